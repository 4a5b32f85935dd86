package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func newRoomCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "room",
		Short: "Room commands",
	}

	cmd.AddCommand(newRoomCreateCmd())
	cmd.AddCommand(newRoomGetCmd())
	cmd.AddCommand(newRoomJoinCmd())
	cmd.AddCommand(newRoomStartCmd())
	cmd.AddCommand(newRoomTurnCmd())
	cmd.AddCommand(newRoomStandingsCmd())

	return cmd
}

func newRoomCreateCmd() *cobra.Command {
	var (
		topic        string
		size         int
		winCondition int
		endCondition int
		randomFill   bool
		wordsFile    string
		words        string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a room and become its host",
		RunE: func(cmd *cobra.Command, args []string) error {
			if wordsFile != "" {
				data, err := os.ReadFile(wordsFile)
				if err != nil {
					return err
				}
				words = string(data)
			}

			req := map[string]any{
				"topic":         topic,
				"size":          size,
				"win_condition": winCondition,
				"end_condition": endCondition,
				"random_fill":   randomFill,
				"random_words":  words,
			}
			var result Game

			if err := client.Post("/api/v1/rooms", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&topic, "topic", "", "Room topic")
	cmd.Flags().IntVar(&size, "size", 5, "Board side length (2-7)")
	cmd.Flags().IntVar(&winCondition, "win", 1, "Completed lines a player needs to win")
	cmd.Flags().IntVar(&endCondition, "end", 1, "Winners needed to end the game")
	cmd.Flags().BoolVar(&randomFill, "random-fill", false, "Offer random boards from the room's word list")
	cmd.Flags().StringVar(&words, "words", "", "Comma or newline separated word list for random boards")
	cmd.Flags().StringVar(&wordsFile, "words-file", "", "File holding the word list for random boards")

	return cmd
}

func newRoomGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <code>",
		Short: "Show a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(roomPath(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomJoinCmd() *cobra.Command {
	var nickname string

	cmd := &cobra.Command{
		Use:   "join <code>",
		Short: "Join a room that has not started",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var body any
			if nickname != "" {
				body = map[string]string{"nickname": nickname}
			}
			var result Game

			if err := client.Post(roomPath(args[0], "join"), body, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname for this room (defaults to the session's)")

	return cmd
}

func newRoomStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <code>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(roomPath(args[0], "start"), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomTurnCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "turn <code> <player_id>",
		Short: "Give the turn to a player (host only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"player_id": args[1]}
			var result Game

			if err := client.Put(roomPath(args[0], "turn"), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newRoomStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings <code>",
		Short: "Show the ranking of a room's players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Standings

			if err := client.Get(roomPath(args[0], "standings"), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
