package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/store"
)

const defaultVisibleRows = 20

// View renders the active screen
func (m Model) View() string {
	if m.screen == ScreenDetail {
		return m.detailView()
	}
	return m.listView()
}

func (m Model) listView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Pokédex"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.filterLine())
	b.WriteString("\n")

	st := m.state

	if st.Options.IsLoading {
		b.WriteString(mutedStyle.Render("Cargando opciones de filtro..."))
		b.WriteString("\n")
	}
	if st.Options.Error != "" {
		b.WriteString(errorLine(st.Options.Error))
	}
	if st.Filtered.IsActive {
		b.WriteString(labelStyle.Render("Filtro activo: "))
		b.WriteString(valueStyle.Render(st.Criteria.String()))
		b.WriteString("\n")
	}
	if st.Filtered.Error != "" {
		b.WriteString(errorLine(st.Filtered.Error))
	}
	if st.List.Error != "" && !st.Filtered.IsActive {
		b.WriteString(errorLine(st.List.Error))
	}
	b.WriteString("\n")

	loading := st.List.IsLoading || (st.Filtered.IsActive && st.Filtered.IsLoading)
	items := st.DisplayList()

	switch {
	case len(items) == 0 && loading:
		b.WriteString(m.spinner.View() + " Cargando Pokémon...")
		b.WriteString("\n")
	case len(items) == 0:
		b.WriteString(mutedStyle.Render("No se encontraron Pokémon."))
		b.WriteString("\n")
	default:
		b.WriteString(m.renderItems(items))
		if loading {
			b.WriteString(m.spinner.View() + " Cargando...")
			b.WriteString("\n")
		}
	}

	bindings := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Open, m.keys.Search, m.keys.Type, m.keys.Generation}
	if st.CanLoadMore() {
		bindings = append(bindings, m.keys.LoadMore)
	}
	bindings = append(bindings, m.keys.Clear, m.keys.Retry, m.keys.Quit)
	if m.focus == FocusSearch {
		bindings = []key.Binding{m.keys.Done, m.keys.ForceQuit}
	}
	b.WriteString(helpView(bindings))

	return b.String()
}

func (m Model) filterLine() string {
	typeLabel := "Todos"
	if m.typeIdx != noSelection && m.typeIdx < len(m.types) {
		typeLabel = m.types[m.typeIdx].Label
	}
	genLabel := "Todas"
	if m.genIdx != noSelection && m.genIdx < len(m.generations) {
		genLabel = m.generations[m.genIdx].Label
	}

	return labelStyle.Render("Tipo: ") + valueStyle.Render(typeLabel) +
		"   " + labelStyle.Render("Generación: ") + valueStyle.Render(genLabel)
}

func (m Model) renderItems(items []pokeapi.PokemonSummary) string {
	rows := defaultVisibleRows
	if m.height > 0 {
		rows = max(m.height-12, 3)
	}

	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	end := min(start+rows, len(items))

	var b strings.Builder
	for i := start; i < end; i++ {
		p := items[i]
		line := fmt.Sprintf("%s %s", idStyle.Render(fmt.Sprintf("#%-4d", p.ID())), store.TypeLabel(p.Name))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%d de %d", m.cursor+1, len(items))))
	b.WriteString("\n")
	return b.String()
}

func (m Model) detailView() string {
	var b strings.Builder
	st := m.state.Details

	switch {
	case st.IsLoading:
		b.WriteString(m.spinner.View() + " Cargando detalles de " + m.detailTarget + "...")
		b.WriteString("\n")

	case st.Error != "":
		b.WriteString(errorLine(st.Error))

	case st.Current != nil:
		b.WriteString(renderDetails(st.Current, m.sprite))
	}

	b.WriteString(helpView([]key.Binding{m.keys.Sprite, m.keys.Retry, m.keys.Back, m.keys.Quit}))
	return b.String()
}

func renderDetails(d *pokeapi.PokemonDetails, sprite pokeapi.SpriteKind) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("#%d %s", d.ID, store.TypeLabel(d.Name))))
	b.WriteString("\n\n")

	badges := make([]string, 0, len(d.Types))
	for _, name := range d.TypeNames() {
		badges = append(badges, typeBadgeStyle.Render(store.TypeLabel(name)))
	}
	b.WriteString(labelStyle.Render("Tipos: ") + lipgloss.JoinHorizontal(lipgloss.Top, badges...))
	b.WriteString("\n")

	fmt.Fprintf(&b, "%s%s   %s%s\n",
		labelStyle.Render("Altura: "), valueStyle.Render(fmt.Sprintf("%.1f m", float64(d.Height)/10)),
		labelStyle.Render("Peso: "), valueStyle.Render(fmt.Sprintf("%.1f kg", float64(d.Weight)/10)))
	if d.BaseExperience > 0 {
		fmt.Fprintf(&b, "%s%d\n", labelStyle.Render("Experiencia base: "), d.BaseExperience)
	}

	if len(d.Stats) > 0 {
		b.WriteString("\n" + labelStyle.Render("Estadísticas") + "\n")
		for _, s := range d.Stats {
			fmt.Fprintf(&b, "  %-16s %3d %s\n", s.Stat.Name, s.BaseStat, strings.Repeat("▪", s.BaseStat/10))
		}
	}

	if len(d.Abilities) > 0 {
		names := make([]string, 0, len(d.Abilities))
		for _, a := range d.Abilities {
			name := a.Ability.Name
			if a.IsHidden {
				name += " (oculta)"
			}
			names = append(names, name)
		}
		b.WriteString("\n" + labelStyle.Render("Habilidades: ") + strings.Join(names, ", ") + "\n")
	}

	b.WriteString("\n" + labelStyle.Render(fmt.Sprintf("Sprite (%s): ", sprite)))
	if u := d.Sprites.URL(sprite); u != "" {
		b.WriteString(u)
	} else {
		b.WriteString(mutedStyle.Render("no disponible"))
	}
	b.WriteString("\n")

	return b.String()
}

func errorLine(msg string) string {
	return errorStyle.Render(msg) + " " + mutedStyle.Render("(r: Reintentar)") + "\n"
}

func helpView(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " · "))
}
