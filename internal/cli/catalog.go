package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/guessfilm/internal/services/catalog"
)

func newCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Film catalog commands",
	}

	cmd.AddCommand(newCatalogValidateCmd())

	return cmd
}

func newCatalogValidateCmd() *cobra.Command {
	var resources string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a catalog file and report films without images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			films, err := catalog.LoadFromFile(args[0])
			if err != nil {
				return err
			}

			result := CatalogResult{Films: len(films)}
			for i := range films {
				if _, ok := catalog.ResolveImage(resources, &films[i]); !ok {
					result.MissingImages = append(result.MissingImages, int64(films[i].ID))
				}
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&resources, "resources", "res", "Directory film images are resolved against")

	return cmd
}
