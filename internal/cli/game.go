package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// newGameCmds returns the chat commands. Each posts one message as the
// selected player and prints the bot's replies.
func newGameCmds() []*cobra.Command {
	return []*cobra.Command{
		newSendCmd(),
		newMessageCmd("start", "Register with the bot", "/start"),
		newMessageCmd("play", "Start a round", "/play"),
		newMessageCmd("surrender", "Give up the current round", "/surrender"),
		newMessageCmd("cancel", "Leave the current round", "/cancel"),
		newMessageCmd("help", "Show the game rules", "/help"),
		newGuessCmd(),
	}
}

func newSendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send <text>",
		Short: "Send raw message text to the bot",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendMessage(cmd, strings.Join(args, " "))
		},
	}
}

func newMessageCmd(use, short, text string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendMessage(cmd, text)
		},
	}
}

func newGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <title>",
		Short: "Guess the film of the current round",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			answer := strings.Join(args, " ")
			if strings.HasPrefix(answer, "/") {
				return fmt.Errorf("a guess cannot start with '/'")
			}
			return sendMessage(cmd, answer)
		},
	}
}

func sendMessage(cmd *cobra.Command, text string) error {
	playerID, err := cfg.RequirePlayer()
	if err != nil {
		return err
	}

	req := map[string]any{
		"player_id": playerID,
		"text":      text,
	}

	var result MessagesResult
	if err := client.Post("/api/v1/messages", req, &result); err != nil {
		return err
	}

	for i := range result.Replies {
		if result.Replies[i].ImageURL != "" {
			result.Replies[i].ImageURL = client.URL(result.Replies[i].ImageURL)
		}
	}

	out := NewOutput(cfg.Output, cmd.OutOrStdout())
	out.Print(result)
	return nil
}

func newStatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Show player statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := cfg.RequirePlayer()
			if err != nil {
				return err
			}

			var result PlayerStats
			if err := client.Get(fmt.Sprintf("/api/v1/players/%d", playerID), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}
}

func newFlushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flush",
		Short: "Persist the player's cached state now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			playerID, err := cfg.RequirePlayer()
			if err != nil {
				return err
			}

			if err := client.Post(fmt.Sprintf("/api/v1/players/%d/flush", playerID), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.PrintMessage(fmt.Sprintf("Player %d flushed", playerID))
			return nil
		},
	}
}
