// Package store holds the browsable Pokémon state: the paginated list, the
// active filter and its results, the cached type and generation catalogs,
// and the Pokémon shown in detail.
//
// Actions block on the PokéAPI and record failures as display messages.
// Views read state through Snapshot and re-render when Subscribe signals.
package store
