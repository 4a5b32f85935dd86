package main

import "github.com/mcoot/wordbingo/internal/cli"

func main() {
	cli.Execute()
}
