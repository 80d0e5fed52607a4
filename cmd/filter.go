package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/store"
)

var (
	filterName       string
	filterType       string
	filterGeneration string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <fragment>",
	Short: "Find Pokémon whose name contains a fragment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runFilter(cmd, store.NameFilter(args[0]))
	},
}

// filterCmd represents the filter command
var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "List the Pokémon matching a name, type or generation",
	Long: `List the Pokémon matching exactly one criterion.

  pokedex filter --name char
  pokedex filter --type fire
  pokedex filter --generation generation-iv

Run "pokedex types" or "pokedex generations" for the accepted values.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria, err := filterCriteria()
		if err != nil {
			return err
		}
		return runFilter(cmd, criteria)
	},
}

func init() {
	filterCmd.Flags().StringVarP(&filterName, "name", "n", "", "name fragment")
	filterCmd.Flags().StringVarP(&filterType, "type", "t", "", "type name")
	filterCmd.Flags().StringVarP(&filterGeneration, "generation", "g", "", "generation name")

	filterCmd.MarkFlagsMutuallyExclusive("name", "type", "generation")
	filterCmd.MarkFlagsOneRequired("name", "type", "generation")
}

// filterCriteria builds the criteria from the filter flags
func filterCriteria() (store.Criteria, error) {
	switch {
	case filterName != "":
		return store.NameFilter(filterName), nil
	case filterType != "":
		return store.TypeFilter(filterType), nil
	case filterGeneration != "":
		return store.GenerationFilter(filterGeneration), nil
	}
	return store.NoFilter(), errors.New("one of --name, --type or --generation must be non-empty")
}

func runFilter(cmd *cobra.Command, criteria store.Criteria) error {
	logger.Info().Str("criteria", criteria.String()).Msg("Filtering Pokémon")

	pokedex.SetCriteria(cmd.Context(), criteria)

	st := pokedex.Snapshot()
	if err := stateError(st.Filtered.Error); err != nil {
		return err
	}

	printSummaries(cmd.OutOrStdout(), st.DisplayList(), nil)
	return nil
}
