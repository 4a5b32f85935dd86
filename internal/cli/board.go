package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board commands",
	}

	cmd.AddCommand(newBoardSubmitCmd())
	cmd.AddCommand(newBoardRandomCmd())

	return cmd
}

// splitWords splits a comma or newline separated list, dropping blanks
func splitWords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.TrimSpace(f); w != "" {
			words = append(words, w)
		}
	}
	return words
}

func newBoardSubmitCmd() *cobra.Command {
	var wordsFile string

	cmd := &cobra.Command{
		Use:   "submit <code> [words]",
		Short: "Submit your board, row by row",
		Long: `Submit a board as a comma separated list of words in row-major order,
either as an argument or from --words-file (one word per line or comma separated).`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			switch {
			case wordsFile != "":
				data, err := os.ReadFile(wordsFile)
				if err != nil {
					return err
				}
				raw = string(data)
			case len(args) == 2:
				raw = args[1]
			default:
				return fmt.Errorf("words are required as an argument or via --words-file")
			}

			req := map[string]any{"words": splitWords(raw)}
			var result Game

			if err := client.Post(roomPath(args[0], "board"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&wordsFile, "words-file", "", "File holding the board's words")

	return cmd
}

func newBoardRandomCmd() *cobra.Command {
	var submit bool

	cmd := &cobra.Command{
		Use:   "random <code>",
		Short: "Suggest a random board, optionally submitting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var board Board

			if err := client.Get(roomPath(args[0], "board", "random"), &board); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if !submit {
				out.Print(board)
				return nil
			}

			var result Game
			if err := client.Post(roomPath(args[0], "board"), map[string]any{"words": board.Words}, &result); err != nil {
				return err
			}
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&submit, "submit", false, "Submit the suggested board")

	return cmd
}
