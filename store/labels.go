package store

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/s0up4200/pokedex/pokeapi"
)

const generationPrefix = "generation-"

// FilterOption is a selectable filter value with its display label
type FilterOption struct {
	Name  string
	URL   string
	Label string
}

// TypeLabel capitalizes a type name: "fire" becomes "Fire"
func TypeLabel(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}

// GenerationLabel turns "generation-iv" into "Generación IV". Names without
// the generation prefix are returned unchanged.
func GenerationLabel(name string) string {
	numeral, ok := strings.CutPrefix(name, generationPrefix)
	if !ok {
		return name
	}
	return "Generación " + strings.ToUpper(numeral)
}

// speciesToPokemon rewrites a pokemon-species locator into the playable
// Pokémon locator with the same id.
func speciesToPokemon(url string) string {
	return strings.Replace(url, "/pokemon-species/", "/pokemon/", 1)
}

func formatOptions(resources []pokeapi.NamedResource, label func(string) string) []FilterOption {
	options := make([]FilterOption, 0, len(resources))
	for _, r := range resources {
		options = append(options, FilterOption{Name: r.Name, URL: r.URL, Label: label(r.Name)})
	}
	return options
}
