package pokeapi

import (
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"
)

// NamedResource is the {name, url} reference returned by every collection
// endpoint of the API.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// PokemonSummary is a lightweight list entry; URL locates the full record
type PokemonSummary = NamedResource

// ID extracts the numeric id from the trailing path segment of URL.
// It returns 0 when the URL does not end in a number.
func (r NamedResource) ID() int {
	trimmed := strings.TrimSuffix(r.URL, "/")
	if trimmed == "" {
		return 0
	}
	id, err := strconv.Atoi(path.Base(trimmed))
	if err != nil {
		return 0
	}
	return id
}

// resourceList is the paginated envelope of collection endpoints
type resourceList struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// TypeEntry is one element of the pokemon field of a type resource
type TypeEntry struct {
	Slot    int           `json:"slot"`
	Pokemon NamedResource `json:"pokemon"`
}

type typeResource struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Pokemon []TypeEntry `json:"pokemon"`
}

type generationResource struct {
	ID             int             `json:"id"`
	Name           string          `json:"name"`
	PokemonSpecies []NamedResource `json:"pokemon_species"`
}

// PokemonDetails is the full record of a single Pokémon
type PokemonDetails struct {
	ID             int              `json:"id"`
	Name           string           `json:"name"`
	Height         int              `json:"height"`
	Weight         int              `json:"weight"`
	BaseExperience int              `json:"base_experience"`
	Sprites        Sprites          `json:"sprites"`
	Types          []PokemonType    `json:"types"`
	Stats          []PokemonStat    `json:"stats"`
	Abilities      []PokemonAbility `json:"abilities"`

	// Raw holds the undecoded response body
	Raw json.RawMessage `json:"-"`
}

// TypeNames returns the names of the Pokémon's types in slot order
func (d *PokemonDetails) TypeNames() []string {
	names := make([]string, 0, len(d.Types))
	for _, t := range d.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// Stat returns the base value of the named stat, or 0 if absent
func (d *PokemonDetails) Stat(name string) int {
	for _, s := range d.Stats {
		if s.Stat.Name == name {
			return s.BaseStat
		}
	}
	return 0
}

// PokemonType is one entry of the types array
type PokemonType struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// PokemonStat is one entry of the stats array
type PokemonStat struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// PokemonAbility is one entry of the abilities array
type PokemonAbility struct {
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
	Ability  NamedResource `json:"ability"`
}

// Sprites holds the image URLs of a Pokémon. Missing sprites are empty.
type Sprites struct {
	FrontDefault string `json:"front_default"`
	BackDefault  string `json:"back_default"`
	FrontShiny   string `json:"front_shiny"`
	BackShiny    string `json:"back_shiny"`
}

// SpriteKind selects one of the sprite variants
type SpriteKind int

const (
	// SpriteFrontDefault is the default front sprite
	SpriteFrontDefault SpriteKind = iota
	// SpriteBackDefault is the default back sprite
	SpriteBackDefault
	// SpriteFrontShiny is the shiny front sprite
	SpriteFrontShiny
	// SpriteBackShiny is the shiny back sprite
	SpriteBackShiny
)

var spriteKindNames = []string{"front_default", "back_default", "front_shiny", "back_shiny"}

// String returns the API field name of the sprite kind
func (k SpriteKind) String() string {
	if int(k) < 0 || int(k) >= len(spriteKindNames) {
		return "unknown"
	}
	return spriteKindNames[k]
}

// Next returns the following sprite kind, wrapping around
func (k SpriteKind) Next() SpriteKind {
	return SpriteKind((int(k) + 1) % len(spriteKindNames))
}

// ParseSpriteKind parses an API sprite field name
func ParseSpriteKind(s string) (SpriteKind, error) {
	for i, name := range spriteKindNames {
		if strings.EqualFold(s, name) {
			return SpriteKind(i), nil
		}
	}
	return SpriteFrontDefault, fmt.Errorf("unknown sprite kind: %s", s)
}

// URL returns the sprite URL of the given kind, falling back to the
// default front sprite when the variant is missing.
func (s Sprites) URL(kind SpriteKind) string {
	var u string
	switch kind {
	case SpriteBackDefault:
		u = s.BackDefault
	case SpriteFrontShiny:
		u = s.FrontShiny
	case SpriteBackShiny:
		u = s.BackShiny
	default:
		u = s.FrontDefault
	}
	if u == "" {
		return s.FrontDefault
	}
	return u
}
