package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/store"
)

// typesCmd represents the types command
var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List the Pokémon types accepted by filter --type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog(cmd, (*store.Store).FormattedTypes)
	},
}

// generationsCmd represents the generations command
var generationsCmd = &cobra.Command{
	Use:   "generations",
	Short: "List the generations accepted by filter --generation",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog(cmd, (*store.Store).FormattedGenerations)
	},
}

func runCatalog(cmd *cobra.Command, options func(*store.Store) []store.FilterOption) error {
	pokedex.FetchFilterOptions(cmd.Context())

	if err := stateError(pokedex.Snapshot().Options.Error); err != nil {
		return err
	}

	printOptions(cmd.OutOrStdout(), options(pokedex))
	return nil
}
