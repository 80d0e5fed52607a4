package pokeapi

import (
	"context"
)

// API defines the PokéAPI operations consumed by the store and the CLI
type API interface {
	// ListPokemon retrieves one page of the Pokémon collection
	ListPokemon(ctx context.Context, offset, limit int) ([]PokemonSummary, error)

	// GetPokemonDetails retrieves the full record of a Pokémon by name or id
	GetPokemonDetails(ctx context.Context, nameOrID string) (*PokemonDetails, error)

	// ListTypes retrieves the catalog of Pokémon types
	ListTypes(ctx context.Context) ([]NamedResource, error)

	// ListGenerations retrieves the catalog of generations
	ListGenerations(ctx context.Context) ([]NamedResource, error)

	// SearchByName returns every Pokémon whose name contains fragment
	SearchByName(ctx context.Context, fragment string) ([]PokemonSummary, error)

	// ListByType retrieves the Pokémon of a type
	ListByType(ctx context.Context, typeName string) ([]TypeEntry, error)

	// ListByGeneration retrieves the species introduced in a generation
	ListByGeneration(ctx context.Context, generation string) ([]NamedResource, error)
}

var _ API = (*Client)(nil)
