package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/store"
)

// DefaultDebounce is the pause after the last keystroke before a name
// search is sent
const DefaultDebounce = 500 * time.Millisecond

// Screen identifies the active view
type Screen int

const (
	// ScreenList shows the browsable collection
	ScreenList Screen = iota
	// ScreenDetail shows a single Pokémon
	ScreenDetail
)

// Focus identifies where keystrokes go on the list screen
type Focus int

const (
	// FocusList routes keys to list navigation and actions
	FocusList Focus = iota
	// FocusSearch routes keys to the name input
	FocusSearch
)

// noSelection marks a type or generation selector with nothing chosen
const noSelection = -1

// Config holds the UI settings
type Config struct {
	Debounce time.Duration
	Sprite   pokeapi.SpriteKind
}

// stateChangedMsg is delivered when the store reports a mutation
type stateChangedMsg struct{}

// actionDoneMsg is returned when a store action finishes
type actionDoneMsg struct {
	action string
}

// searchDebounceMsg fires after the debounce delay. Only the message
// carrying the latest id dispatches a search.
type searchDebounceMsg struct {
	id    int64
	value string
}

// Model is the bubbletea model of the browser
type Model struct {
	ctx    context.Context
	store  *store.Store
	logger zerolog.Logger
	cfg    Config
	keys   keyMap

	screen     Screen
	focus      Focus
	search     textinput.Model
	spinner    spinner.Model
	debounceID int64

	cursor      int
	typeIdx     int
	genIdx      int
	types       []store.FilterOption
	generations []store.FilterOption

	detailTarget string
	sprite       pokeapi.SpriteKind

	state   store.State
	changes <-chan struct{}

	width  int
	height int
}

// New creates the model. Store actions run with ctx.
func New(ctx context.Context, st *store.Store, logger zerolog.Logger, cfg Config) Model {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	search := textinput.New()
	search.Prompt = "Buscar: "
	search.Placeholder = "nombre del Pokémon"
	search.CharLimit = 40
	search.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		ctx:     ctx,
		store:   st,
		logger:  logger,
		cfg:     cfg,
		keys:    defaultKeyMap(),
		search:  search,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		typeIdx: noSelection,
		genIdx:  noSelection,
		sprite:  cfg.Sprite,
	}
	m.refresh()

	return m
}

// Init loads the first page and the filter options
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		waitForChange(m.changes),
		m.spinner.Tick,
		m.run("fetch-filter-options", m.store.FetchFilterOptions),
	}
	if len(m.state.List.Items) == 0 {
		cmds = append(cmds, m.fetchList(0, m.store.PageSize()))
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case stateChangedMsg:
		m.refresh()
		return m, waitForChange(m.changes)

	case actionDoneMsg:
		m.logger.Debug().Str("action", msg.action).Msg("Store action finished")
		m.refresh()
		return m, nil

	case searchDebounceMsg:
		if msg.id != m.debounceID {
			return m, nil
		}
		m.typeIdx = noSelection
		m.genIdx = noSelection
		return m, m.updateFilter("name", msg.value)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.screen == ScreenDetail {
			return m.updateDetail(msg)
		}
		if m.focus == FocusSearch {
			return m.updateSearch(msg)
		}
		return m.updateList(msg)
	}

	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.state.DisplayList()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Open):
		if len(items) == 0 {
			return m, nil
		}
		return m.openDetail(items[m.cursor].Name)

	case key.Matches(msg, m.keys.Search):
		m.focus = FocusSearch
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Type):
		if len(m.types) == 0 {
			return m, nil
		}
		m.typeIdx = cycle(m.typeIdx, len(m.types))
		m.genIdx = noSelection
		m.resetSearch()
		return m, m.selectOption("type", m.types, m.typeIdx)

	case key.Matches(msg, m.keys.Generation):
		if len(m.generations) == 0 {
			return m, nil
		}
		m.genIdx = cycle(m.genIdx, len(m.generations))
		m.typeIdx = noSelection
		m.resetSearch()
		return m, m.selectOption("generation", m.generations, m.genIdx)

	case key.Matches(msg, m.keys.LoadMore):
		if !m.state.CanLoadMore() {
			return m, nil
		}
		return m, m.run("load-more", func(ctx context.Context) { m.store.LoadMore(ctx) })

	case key.Matches(msg, m.keys.Clear):
		m.typeIdx = noSelection
		m.genIdx = noSelection
		m.resetSearch()
		m.cursor = 0
		return m, m.run("clear-filters", m.store.ClearFilters)

	case key.Matches(msg, m.keys.Retry):
		return m, m.retry()
	}

	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Done):
		m.focus = FocusList
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.debounce(m.search.Value()))
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.screen = ScreenList
		m.detailTarget = ""
		m.store.ClearDetails()
		m.refresh()

	case key.Matches(msg, m.keys.Sprite):
		m.sprite = m.sprite.Next()

	case key.Matches(msg, m.keys.Retry):
		return m, m.retry()
	}

	return m, nil
}

func (m Model) openDetail(name string) (tea.Model, tea.Cmd) {
	m.screen = ScreenDetail
	m.detailTarget = name
	m.sprite = m.cfg.Sprite
	return m, m.fetchDetails(name)
}

// debounce schedules a name search for value. Earlier pending searches
// are invalidated by the new id.
func (m *Model) debounce(value string) tea.Cmd {
	m.debounceID++
	id := m.debounceID
	return tea.Tick(m.cfg.Debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{id: id, value: value}
	})
}

// resetSearch empties the name input and cancels a pending search
func (m *Model) resetSearch() {
	m.search.Reset()
	m.debounceID++
}

// retry re-invokes the actions whose last run failed
func (m Model) retry() tea.Cmd {
	st := m.state

	if m.screen == ScreenDetail {
		if st.Details.Error == "" || m.detailTarget == "" {
			return nil
		}
		return m.fetchDetails(m.detailTarget)
	}

	var cmds []tea.Cmd
	if st.List.Error != "" {
		cmds = append(cmds, m.fetchList(st.List.Offset, st.List.Limit))
	}
	if st.Filtered.Error != "" {
		cmds = append(cmds, m.run("apply-filters", m.store.ApplyFilters))
	}
	if st.Options.Error != "" {
		cmds = append(cmds, m.run("fetch-filter-options", m.store.FetchFilterOptions))
	}
	return tea.Batch(cmds...)
}

// refresh copies the store state into the model
func (m *Model) refresh() {
	m.state = m.store.Snapshot()
	m.types = m.store.FormattedTypes()
	m.generations = m.store.FormattedGenerations()

	if n := len(m.state.DisplayList()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m Model) run(name string, action func(ctx context.Context)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		action(ctx)
		return actionDoneMsg{action: name}
	}
}

func (m Model) fetchList(offset, limit int) tea.Cmd {
	return m.run("fetch-list", func(ctx context.Context) {
		m.store.FetchList(ctx, offset, limit)
	})
}

func (m Model) fetchDetails(name string) tea.Cmd {
	return m.run("fetch-details", func(ctx context.Context) {
		m.store.FetchDetails(ctx, name)
	})
}

func (m Model) updateFilter(field, value string) tea.Cmd {
	return m.run("update-filter", func(ctx context.Context) {
		m.store.UpdateFilter(ctx, field, value)
	})
}

// selectOption filters by the chosen option. Cycling back to no selection
// clears the filters, which also reloads a list left empty by a failure.
func (m Model) selectOption(field string, options []store.FilterOption, idx int) tea.Cmd {
	if idx == noSelection {
		return m.run("clear-filters", m.store.ClearFilters)
	}
	return m.updateFilter(field, optionName(options, idx))
}

// waitForChange blocks until the store signals a mutation
func waitForChange(changes <-chan struct{}) tea.Cmd {
	if changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return stateChangedMsg{}
	}
}

// cycle advances a selector through noSelection, 0 .. n-1 and back
func cycle(idx, n int) int {
	if idx+1 >= n {
		return noSelection
	}
	return idx + 1
}

func optionName(options []store.FilterOption, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx].Name
}
