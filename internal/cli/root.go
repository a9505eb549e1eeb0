package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "guessfilm",
		Short: "CLI tool for the guess-the-film game API",
		Long: `guessfilm is a CLI tool for playing the guess-the-film game over its JSON API.

Game commands act as the chat player selected with --player. Every reply the
bot would send in a chat is printed in order.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.APIKey)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: GUESSFILM_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key (env: GUESSFILM_API_KEY)")
	rootCmd.PersistentFlags().Int64VarP(&cfg.PlayerID, "player", "p", cfg.PlayerID, "Player id (env: GUESSFILM_PLAYER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newGameCmds()...)
	rootCmd.AddCommand(newStatCmd())
	rootCmd.AddCommand(newFlushCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newCatalogCmd())
	rootCmd.AddCommand(newAPIKeyCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
