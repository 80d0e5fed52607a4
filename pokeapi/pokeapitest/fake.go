// Package pokeapitest provides an in-memory pokeapi.API for tests.
package pokeapitest

import (
	"context"
	"strconv"
	"sync"

	"github.com/s0up4200/pokedex/pokeapi"
)

// Call records one invocation of the fake
type Call struct {
	Method string
	Args   []any
}

// Fake implements pokeapi.API. Each method delegates to the matching Func
// field when set and returns empty results otherwise.
type Fake struct {
	ListPokemonFunc       func(ctx context.Context, offset, limit int) ([]pokeapi.PokemonSummary, error)
	GetPokemonDetailsFunc func(ctx context.Context, nameOrID string) (*pokeapi.PokemonDetails, error)
	ListTypesFunc         func(ctx context.Context) ([]pokeapi.NamedResource, error)
	ListGenerationsFunc   func(ctx context.Context) ([]pokeapi.NamedResource, error)
	SearchByNameFunc      func(ctx context.Context, fragment string) ([]pokeapi.PokemonSummary, error)
	ListByTypeFunc        func(ctx context.Context, typeName string) ([]pokeapi.TypeEntry, error)
	ListByGenerationFunc  func(ctx context.Context, generation string) ([]pokeapi.NamedResource, error)

	mu    sync.Mutex
	calls []Call
}

var _ pokeapi.API = (*Fake)(nil)

func (f *Fake) record(method string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{Method: method, Args: args})
}

// Calls returns every recorded call in order
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times method was called
func (f *Fake) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *Fake) ListPokemon(ctx context.Context, offset, limit int) ([]pokeapi.PokemonSummary, error) {
	f.record("ListPokemon", offset, limit)
	if f.ListPokemonFunc != nil {
		return f.ListPokemonFunc(ctx, offset, limit)
	}
	return []pokeapi.PokemonSummary{}, nil
}

func (f *Fake) GetPokemonDetails(ctx context.Context, nameOrID string) (*pokeapi.PokemonDetails, error) {
	f.record("GetPokemonDetails", nameOrID)
	if f.GetPokemonDetailsFunc != nil {
		return f.GetPokemonDetailsFunc(ctx, nameOrID)
	}
	return nil, &pokeapi.NotFoundError{Identifier: nameOrID}
}

func (f *Fake) ListTypes(ctx context.Context) ([]pokeapi.NamedResource, error) {
	f.record("ListTypes")
	if f.ListTypesFunc != nil {
		return f.ListTypesFunc(ctx)
	}
	return []pokeapi.NamedResource{}, nil
}

func (f *Fake) ListGenerations(ctx context.Context) ([]pokeapi.NamedResource, error) {
	f.record("ListGenerations")
	if f.ListGenerationsFunc != nil {
		return f.ListGenerationsFunc(ctx)
	}
	return []pokeapi.NamedResource{}, nil
}

func (f *Fake) SearchByName(ctx context.Context, fragment string) ([]pokeapi.PokemonSummary, error) {
	f.record("SearchByName", fragment)
	if f.SearchByNameFunc != nil {
		return f.SearchByNameFunc(ctx, fragment)
	}
	return []pokeapi.PokemonSummary{}, nil
}

func (f *Fake) ListByType(ctx context.Context, typeName string) ([]pokeapi.TypeEntry, error) {
	f.record("ListByType", typeName)
	if f.ListByTypeFunc != nil {
		return f.ListByTypeFunc(ctx, typeName)
	}
	return []pokeapi.TypeEntry{}, nil
}

func (f *Fake) ListByGeneration(ctx context.Context, generation string) ([]pokeapi.NamedResource, error) {
	f.record("ListByGeneration", generation)
	if f.ListByGenerationFunc != nil {
		return f.ListByGenerationFunc(ctx, generation)
	}
	return []pokeapi.NamedResource{}, nil
}

// Page builds n summaries starting at id start+1
func Page(start, n int) []pokeapi.PokemonSummary {
	items := make([]pokeapi.PokemonSummary, 0, n)
	for i := start + 1; i <= start+n; i++ {
		items = append(items, pokeapi.PokemonSummary{
			Name: "pokemon-" + strconv.Itoa(i),
			URL:  "https://pokeapi.co/api/v2/pokemon/" + strconv.Itoa(i) + "/",
		})
	}
	return items
}
