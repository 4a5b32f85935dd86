package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Play commands",
	}

	cmd.AddCommand(newGameCallCmd())
	cmd.AddCommand(newGameRequestCmd())
	cmd.AddCommand(newGameResolveCmd())

	return cmd
}

func newGameCallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "call <code> <word>",
		Short: "Call a word on your turn",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"word": args[1]}
			var result CallResult

			if err := client.Post(roomPath(args[0], "call"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRequestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "request <code> <index> <word>",
		Short: "Ask the host to mark a cell of your board",
		Long: `Ask the host to mark the cell at index (0-based, row-major) because
word was called in a form the board did not match.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid index: %s", args[1])
			}

			req := map[string]any{"word": args[2], "index": index}
			var result Game

			if err := client.Post(roomPath(args[0], "requests"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameResolveCmd() *cobra.Command {
	var deny bool

	cmd := &cobra.Command{
		Use:   "resolve <code> <request_id>",
		Short: "Approve or deny a pending request (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"approve": !deny}
			var result Game

			if err := client.Post(roomPath(args[0], "requests", args[1]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&deny, "deny", false, "Deny instead of approve")

	return cmd
}
