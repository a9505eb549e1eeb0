package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/guessfilm/internal/dependencies/random"
	"github.com/mcoot/guessfilm/internal/services/auth"
)

func newAPIKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apikey",
		Short: "API key commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "generate",
		Short: "Generate an API key and the API_KEY_HASH value for the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := auth.New("", random.New())
			if err != nil {
				return err
			}

			key, hash, err := service.GenerateKey()
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(APIKeyResult{Key: key, Hash: hash})
			return nil
		},
	})

	return cmd
}
