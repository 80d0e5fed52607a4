package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/store"
)

const ruleWidth = 60

func printRule(w io.Writer) {
	fmt.Fprintln(w, strings.Repeat("━", ruleWidth))
}

// printSummaries writes one row per Pokémon. types maps a name to its
// type names and may be nil.
func printSummaries(w io.Writer, items []pokeapi.PokemonSummary, types map[string][]string) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No se encontraron Pokémon.")
		return
	}

	fmt.Fprintf(w, "%d Pokémon\n", len(items))
	printRule(w)
	fmt.Fprintf(w, "%-6s %-24s %s\n", "#", "NOMBRE", "TIPOS")
	printRule(w)

	for _, p := range items {
		id := "?"
		if n := p.ID(); n > 0 {
			id = strconv.Itoa(n)
		}

		labels := make([]string, 0, len(types[p.Name]))
		for _, t := range types[p.Name] {
			labels = append(labels, store.TypeLabel(t))
		}

		fmt.Fprintf(w, "%-6s %-24s %s\n", id, store.TypeLabel(p.Name), strings.Join(labels, ", "))
	}
	printRule(w)
}

// printDetails writes the full record of a Pokémon
func printDetails(w io.Writer, d *pokeapi.PokemonDetails, sprite pokeapi.SpriteKind) {
	fmt.Fprintf(w, "#%d %s\n", d.ID, store.TypeLabel(d.Name))
	printRule(w)

	labels := make([]string, 0, len(d.Types))
	for _, t := range d.TypeNames() {
		labels = append(labels, store.TypeLabel(t))
	}
	fmt.Fprintf(w, "Tipos:            %s\n", strings.Join(labels, ", "))
	fmt.Fprintf(w, "Altura:           %.1f m\n", float64(d.Height)/10)
	fmt.Fprintf(w, "Peso:             %.1f kg\n", float64(d.Weight)/10)
	if d.BaseExperience > 0 {
		fmt.Fprintf(w, "Experiencia base: %d\n", d.BaseExperience)
	}

	if len(d.Stats) > 0 {
		fmt.Fprintln(w, "\nEstadísticas:")
		for _, s := range d.Stats {
			fmt.Fprintf(w, "  %-16s %3d\n", s.Stat.Name, s.BaseStat)
		}
	}

	if len(d.Abilities) > 0 {
		fmt.Fprintln(w, "\nHabilidades:")
		for _, a := range d.Abilities {
			if a.IsHidden {
				fmt.Fprintf(w, "  • %s (oculta)\n", a.Ability.Name)
			} else {
				fmt.Fprintf(w, "  • %s\n", a.Ability.Name)
			}
		}
	}

	if u := d.Sprites.URL(sprite); u != "" {
		fmt.Fprintf(w, "\nSprite (%s): %s\n", sprite, u)
	}
}

// printOptions writes a filter catalog as name and label columns
func printOptions(w io.Writer, options []store.FilterOption) {
	for _, o := range options {
		fmt.Fprintf(w, "%-20s %s\n", o.Name, o.Label)
	}
}
