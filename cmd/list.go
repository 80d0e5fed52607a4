package cmd

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/query"
)

// detailsConcurrency bounds the parallel detail requests of list --details
const detailsConcurrency = 5

var (
	listOffset  int
	listLimit   int
	listAll     bool
	listWhere   string
	listQuery   string
	listDetails bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List Pokémon page by page",
	Long: `List a page of the Pokémon collection, or every page with --all.

The result can be narrowed with an expression evaluated against each entry,
either inline with --where or by name from the queries section of the config:

  pokedex list --all --where 'startsWith(Name, "char")'
  pokedex list --all --where 'ID > 151 && ID <= 251'`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listOffset, "offset", 0, "index of the first Pokémon")
	listCmd.Flags().IntVar(&listLimit, "limit", 0, "page size (default is store.page_size)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "keep loading pages until the collection is exhausted")
	listCmd.Flags().StringVarP(&listWhere, "where", "w", "", "filter expression")
	listCmd.Flags().StringVarP(&listQuery, "query", "q", "", "use a saved query from config")
	listCmd.Flags().BoolVar(&listDetails, "details", false, "fetch the types of every listed Pokémon")

	listCmd.MarkFlagsMutuallyExclusive("where", "query")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	expression, err := getQueryExpression()
	if err != nil {
		return err
	}

	var q *query.Query
	if expression != "" {
		q, err = query.NewCompiler().Compile(expression)
		if err != nil {
			return fmt.Errorf("invalid query: %w", err)
		}
		logger.Debug().Str("query", expression).Msg("Compiled query")
	}

	pokedex.FetchList(ctx, listOffset, listLimit)
	if err := stateError(pokedex.Snapshot().List.Error); err != nil {
		return err
	}

	if listAll {
		for pokedex.LoadMore(ctx) {
			if err := stateError(pokedex.Snapshot().List.Error); err != nil {
				return err
			}
		}
	}

	items := pokedex.DisplayList()
	if q != nil {
		items, err = q.Filter(ctx, items)
		if err != nil {
			return err
		}
	}

	var types map[string][]string
	if listDetails {
		types, err = fetchTypes(ctx, items)
		if err != nil {
			return err
		}
	}

	printSummaries(cmd.OutOrStdout(), items, types)
	return nil
}

// getQueryExpression determines the query expression to use
func getQueryExpression() (string, error) {
	// Priority: command line expression > saved query
	if listWhere != "" {
		return listWhere, nil
	}

	if listQuery != "" {
		// viper lower-cases map keys
		if expression, ok := cfg.Queries[strings.ToLower(listQuery)]; ok {
			return expression, nil
		}
		return "", fmt.Errorf("query '%s' not found in config", listQuery)
	}

	return "", nil
}

// fetchTypes loads the details of every item and returns their type names
// keyed by Pokémon name. The first failure cancels the remaining requests.
func fetchTypes(ctx context.Context, items []pokeapi.PokemonSummary) (map[string][]string, error) {
	var (
		mu    sync.Mutex
		types = make(map[string][]string, len(items))
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(detailsConcurrency)

	for _, p := range items {
		g.Go(func() error {
			details, err := client.GetPokemonDetails(ctx, p.Name)
			if err != nil {
				return err
			}

			mu.Lock()
			types[p.Name] = details.TypeNames()
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Debug().Int("count", len(types)).Msg("Fetched Pokémon details")
	return types, nil
}
