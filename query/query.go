package query

import (
	"context"
	"errors"
	"maps"
	"runtime"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pokedex/pokeapi"
)

// sequentialLimit is the list size below which Filter does not fan out
const sequentialLimit = 256

// Query is a compiled boolean expression over Pokémon summaries
type Query struct {
	expression string
	program    *vm.Program
	helpers    map[string]any
}

// Option configures a Compiler
type Option func(*Compiler)

// WithCache keeps up to size compiled queries
func WithCache(size int) Option {
	return func(c *Compiler) {
		if size > 0 {
			c.cache = newLRUCache[*Query](size)
		}
	}
}

// WithFunctions adds helper functions available to expressions
func WithFunctions(funcs map[string]any) Option {
	return func(c *Compiler) {
		maps.Copy(c.helpers, funcs)
	}
}

// Compiler turns expressions into queries
type Compiler struct {
	helpers map[string]any
	cache   *lruCache[*Query]
}

// NewCompiler creates a compiler with the default helpers
func NewCompiler(opts ...Option) *Compiler {
	c := &Compiler{
		helpers: helperFunctions(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Compile parses expression. Identifiers are checked against the summary
// fields and the helpers, and the result must be boolean.
func (c *Compiler) Compile(expression string) (*Query, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     "empty expression",
			Position:   -1,
		}
	}

	if c.cache != nil {
		if q, ok := c.cache.Get(expression); ok {
			return q, nil
		}
	}

	program, err := expr.Compile(expression,
		expr.Env(environment(c.helpers, pokeapi.PokemonSummary{})),
		expr.AsBool(),
	)
	if err != nil {
		compErr := &CompilationError{
			Expression: expression,
			Reason:     "failed to compile expression",
			Position:   -1,
			Err:        err,
		}
		var fileErr *file.Error
		if errors.As(err, &fileErr) {
			compErr.Reason = fileErr.Message
			compErr.Position = fileErr.Column
		}
		return nil, compErr
	}

	q := &Query{
		expression: expression,
		program:    program,
		helpers:    c.helpers,
	}

	if c.cache != nil {
		c.cache.Put(expression, q)
	}

	return q, nil
}

// Clear drops every cached query
func (c *Compiler) Clear() {
	if c.cache != nil {
		c.cache.Clear()
	}
}

// CacheSize returns the number of cached queries
func (c *Compiler) CacheSize() int {
	if c.cache != nil {
		return c.cache.Len()
	}
	return 0
}

// Expression returns the source of the query
func (q *Query) Expression() string {
	return q.expression
}

// Match evaluates the query against p. A runtime error counts as no match.
func (q *Query) Match(p pokeapi.PokemonSummary) bool {
	result, err := expr.Run(q.program, environment(q.helpers, p))
	if err != nil {
		return false
	}
	return result.(bool)
}

// Filter returns the items matching the query, preserving order. Large
// lists are split into chunks evaluated concurrently.
func (q *Query) Filter(ctx context.Context, items []pokeapi.PokemonSummary) ([]pokeapi.PokemonSummary, error) {
	if len(items) < sequentialLimit {
		return q.filterChunk(items), nil
	}

	workers := runtime.GOMAXPROCS(0)
	chunkSize := max(len(items)/workers, sequentialLimit)
	chunks := make([][]pokeapi.PokemonSummary, 0, len(items)/chunkSize+1)
	for start := 0; start < len(items); start += chunkSize {
		chunks = append(chunks, items[start:min(start+chunkSize, len(items))])
	}

	results := make([][]pokeapi.PokemonSummary, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, chunk := range chunks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = q.filterChunk(chunk)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	matches := make([]pokeapi.PokemonSummary, 0)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

func (q *Query) filterChunk(items []pokeapi.PokemonSummary) []pokeapi.PokemonSummary {
	matches := make([]pokeapi.PokemonSummary, 0)
	for _, p := range items {
		if q.Match(p) {
			matches = append(matches, p)
		}
	}
	return matches
}

func environment(helpers map[string]any, p pokeapi.PokemonSummary) map[string]any {
	env := make(map[string]any, len(helpers)+3)
	maps.Copy(env, helpers)
	env["Name"] = p.Name
	env["URL"] = p.URL
	env["ID"] = p.ID()
	return env
}

func helperFunctions() map[string]any {
	return map[string]any{
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"endsWith": func(str, suffix string) bool {
			return strings.HasSuffix(strings.ToLower(str), strings.ToLower(suffix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}
