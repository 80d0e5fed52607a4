package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/pokedex/pokeapi"
)

// DefaultPageSize is the number of Pokémon requested per list page
const DefaultPageSize = 20

// ListState is the paginated base collection
type ListState struct {
	Items     []pokeapi.PokemonSummary
	Offset    int
	Limit     int
	HasMore   bool
	IsLoading bool
	Error     string
}

// FilteredState is the collection produced by the active criteria
type FilteredState struct {
	Items     []pokeapi.PokemonSummary
	IsActive  bool
	IsLoading bool
	Error     string
}

// FilterOptionsState caches the type and generation catalogs
type FilterOptionsState struct {
	Types       []pokeapi.NamedResource
	Generations []pokeapi.NamedResource
	IsLoading   bool
	Error       string
	Loaded      bool
}

// DetailsState holds the Pokémon shown in the detail view
type DetailsState struct {
	Current   *pokeapi.PokemonDetails
	IsLoading bool
	Error     string
}

// State is a point-in-time copy of everything the store holds
type State struct {
	List     ListState
	Filtered FilteredState
	Criteria Criteria
	Options  FilterOptionsState
	Details  DetailsState
}

// DisplayList returns the filtered items when a filter is active and the
// base list otherwise.
func (st State) DisplayList() []pokeapi.PokemonSummary {
	if st.Filtered.IsActive {
		return st.Filtered.Items
	}
	return st.List.Items
}

// CanLoadMore reports whether another page can be requested
func (st State) CanLoadMore() bool {
	return st.List.HasMore && !st.Filtered.IsActive && !st.List.IsLoading
}

// Option configures a Store
type Option func(*Store)

// WithPageSize sets the page size used by LoadMore and ClearFilters
func WithPageSize(size int) Option {
	return func(s *Store) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// Store owns the list, filter, filter option and detail state of the
// application. All mutations go through its actions, which block on the
// API and record failures as messages instead of returning them.
type Store struct {
	api      pokeapi.API
	logger   zerolog.Logger
	pageSize int

	mu         sync.Mutex
	list       ListState
	filtered   FilteredState
	criteria   Criteria
	options    FilterOptionsState
	details    DetailsState
	filterSeq  uint64
	detailsSeq uint64

	// listStart is the offset of the first loaded item
	listStart int

	subMu  sync.Mutex
	subs   map[int]chan struct{}
	nextID int
}

// New creates a store backed by api
func New(api pokeapi.API, logger zerolog.Logger, opts ...Option) *Store {
	s := &Store{
		api:      api,
		logger:   logger.With().Str("component", "store").Logger(),
		pageSize: DefaultPageSize,
		subs:     make(map[int]chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.list = ListState{Limit: s.pageSize, HasMore: true}

	return s
}

// PageSize returns the configured page size
func (s *Store) PageSize() int {
	return s.pageSize
}

// update runs fn under the state lock and then notifies subscribers
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	s.mu.Unlock()
	s.notify()
}

// FetchList loads one page of the base collection. An offset of 0 replaces
// the collection, any other offset appends to it. A non-positive limit uses
// the configured page size.
func (s *Store) FetchList(ctx context.Context, offset, limit int) {
	if limit <= 0 {
		limit = s.pageSize
	}

	s.update(func() {
		s.beginList(offset, limit)
	})

	s.loadPage(ctx, offset, limit)
}

// LoadMore requests the page following the loaded items. It does nothing
// and returns false while a filter is active, a page is loading or the
// collection is exhausted.
func (s *Store) LoadMore(ctx context.Context) bool {
	s.mu.Lock()
	if !s.list.HasMore || s.filtered.IsActive || s.list.IsLoading {
		s.mu.Unlock()
		return false
	}
	offset, limit := s.listStart+len(s.list.Items), s.pageSize
	s.beginList(offset, limit)
	s.mu.Unlock()
	s.notify()

	s.loadPage(ctx, offset, limit)
	return true
}

// beginList must be called with mu held
func (s *Store) beginList(offset, limit int) {
	if offset == 0 {
		s.list.Items = nil
	}
	if len(s.list.Items) == 0 {
		s.listStart = offset
	}
	s.list.IsLoading = true
	s.list.Error = ""
	s.list.Offset = offset
	s.list.Limit = limit
}

func (s *Store) loadPage(ctx context.Context, offset, limit int) {
	items, err := s.api.ListPokemon(ctx, offset, limit)

	s.update(func() {
		defer func() { s.list.IsLoading = false }()

		if err != nil {
			s.logger.Warn().Err(err).Int("offset", offset).Msg("Failed to fetch Pokémon list")
			s.list.Error = errorMessage(err, "Error desconocido al obtener la lista de Pokémon.")
			if offset == 0 {
				s.list.Items = nil
			}
			return
		}

		s.list.HasMore = len(items) >= limit

		if len(items) == 0 {
			if offset > 0 {
				s.logger.Info().Int("offset", offset).Msg("No more Pokémon to load")
			}
			return
		}

		if offset == 0 {
			s.list.Items = slices.Clone(items)
		} else {
			s.list.Items = append(s.list.Items, items...)
		}
	})
}

// FetchDetails loads the full record of a Pokémon. The previous record is
// discarded before the request is made. Only the latest request is applied.
func (s *Store) FetchDetails(ctx context.Context, nameOrID string) {
	var seq uint64
	s.update(func() {
		s.detailsSeq++
		seq = s.detailsSeq
		s.details = DetailsState{IsLoading: true}
	})

	details, err := s.api.GetPokemonDetails(ctx, nameOrID)

	s.update(func() {
		if seq != s.detailsSeq {
			s.logger.Debug().Str("pokemon", nameOrID).Msg("Discarding superseded details response")
			return
		}

		s.details.IsLoading = false
		if err != nil {
			s.logger.Warn().Err(err).Str("pokemon", nameOrID).Msg("Failed to fetch Pokémon details")
			s.details.Error = errorMessage(err, fmt.Sprintf("Error al obtener detalles de %s.", nameOrID))
			return
		}
		s.details.Current = details
	})
}

// ClearDetails discards the current record and its error. Pending detail
// requests are invalidated.
func (s *Store) ClearDetails() {
	s.update(func() {
		s.detailsSeq++
		s.details = DetailsState{}
	})
}

// FetchFilterOptions loads the type and generation catalogs concurrently.
// It is a no-op once both are cached or while a load is running.
func (s *Store) FetchFilterOptions(ctx context.Context) {
	s.mu.Lock()
	if s.options.Loaded || s.options.IsLoading {
		s.mu.Unlock()
		return
	}
	s.options.IsLoading = true
	s.options.Error = ""
	s.mu.Unlock()
	s.notify()

	var types, generations []pokeapi.NamedResource

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		types, err = s.api.ListTypes(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		generations, err = s.api.ListGenerations(gctx)
		return err
	})
	err := g.Wait()

	s.update(func() {
		s.options.IsLoading = false
		if err != nil {
			s.logger.Warn().Err(err).Msg("Failed to fetch filter options")
			s.options.Error = fmt.Sprintf("Error al cargar las opciones de filtro: %s", err)
			return
		}
		s.options.Types = types
		s.options.Generations = generations
		s.options.Loaded = true
	})
}

// UpdateFilter makes field the only active criterion and applies it. An
// empty value clears the criteria. Unknown fields are ignored.
func (s *Store) UpdateFilter(ctx context.Context, field, value string) {
	f, err := ParseFilterField(field)
	if err != nil {
		s.logger.Warn().Err(err).Str("value", value).Msg("Ignoring filter update")
		return
	}
	s.SetCriteria(ctx, NewCriteria(f, value))
}

// SetCriteria replaces the criteria and applies them
func (s *Store) SetCriteria(ctx context.Context, criteria Criteria) {
	s.update(func() {
		s.criteria = criteria
	})
	s.ApplyFilters(ctx)
}

// ApplyFilters queries the API for the current criteria and replaces the
// filtered items. When several calls overlap, only the latest issued one
// is applied.
func (s *Store) ApplyFilters(ctx context.Context) {
	var (
		criteria Criteria
		seq      uint64
		active   bool
	)

	s.update(func() {
		s.filterSeq++
		seq = s.filterSeq
		criteria = s.criteria
		active = !criteria.IsEmpty()

		s.filtered.IsActive = active
		s.filtered.Error = ""
		s.filtered.IsLoading = active
		if !active {
			s.filtered.Items = nil
		}
	})

	if !active {
		return
	}

	items, err := s.runFilter(ctx, criteria)

	s.update(func() {
		if seq != s.filterSeq {
			s.logger.Debug().
				Stringer("criteria", criteria).
				Uint64("seq", seq).
				Msg("Discarding superseded filter response")
			return
		}

		s.filtered.IsLoading = false
		if err != nil {
			s.logger.Warn().Err(err).Stringer("criteria", criteria).Msg("Failed to apply filters")
			s.filtered.Error = fmt.Sprintf("Error al aplicar los filtros: %s", err)
			s.filtered.Items = nil
			return
		}
		s.filtered.Items = items
	})
}

func (s *Store) runFilter(ctx context.Context, criteria Criteria) ([]pokeapi.PokemonSummary, error) {
	switch criteria.Field() {
	case FieldName:
		return s.api.SearchByName(ctx, criteria.Value())

	case FieldType:
		entries, err := s.api.ListByType(ctx, criteria.Value())
		if err != nil {
			return nil, err
		}
		items := make([]pokeapi.PokemonSummary, 0, len(entries))
		for _, e := range entries {
			items = append(items, e.Pokemon)
		}
		return items, nil

	case FieldGeneration:
		species, err := s.api.ListByGeneration(ctx, criteria.Value())
		if err != nil {
			return nil, err
		}
		items := make([]pokeapi.PokemonSummary, 0, len(species))
		for _, sp := range species {
			items = append(items, pokeapi.PokemonSummary{Name: sp.Name, URL: speciesToPokemon(sp.URL)})
		}
		return items, nil

	default:
		return nil, fmt.Errorf("unsupported filter field: %s", criteria.Field())
	}
}

// ClearFilters drops every criterion and the filtered items. Pending filter
// responses are invalidated. If the base list is empty a first page is
// requested.
func (s *Store) ClearFilters(ctx context.Context) {
	var refetch bool
	s.update(func() {
		s.filterSeq++
		s.criteria = NoFilter()
		s.filtered = FilteredState{}
		refetch = len(s.list.Items) == 0 && !s.list.IsLoading
	})

	if refetch {
		s.FetchList(ctx, 0, s.pageSize)
	}
}

// Criteria returns the current criteria
func (s *Store) Criteria() Criteria {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.criteria
}

// DisplayList returns a copy of the list the views should render
func (s *Store) DisplayList() []pokeapi.PokemonSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.filtered.IsActive {
		return slices.Clone(s.filtered.Items)
	}
	return slices.Clone(s.list.Items)
}

// FormattedTypes returns the cached types with capitalized labels
func (s *Store) FormattedTypes() []FilterOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formatOptions(s.options.Types, TypeLabel)
}

// FormattedGenerations returns the cached generations with readable labels
func (s *Store) FormattedGenerations() []FilterOption {
	s.mu.Lock()
	defer s.mu.Unlock()
	return formatOptions(s.options.Generations, GenerationLabel)
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		List:     s.list,
		Filtered: s.filtered,
		Criteria: s.criteria,
		Options:  s.options,
		Details:  s.details,
	}
	st.List.Items = slices.Clone(s.list.Items)
	st.Filtered.Items = slices.Clone(s.filtered.Items)
	st.Options.Types = slices.Clone(s.options.Types)
	st.Options.Generations = slices.Clone(s.options.Generations)
	if s.details.Current != nil {
		st.Details.Current = cloneDetails(s.details.Current)
	}
	return st
}

func cloneDetails(d *pokeapi.PokemonDetails) *pokeapi.PokemonDetails {
	c := *d
	c.Types = slices.Clone(d.Types)
	c.Stats = slices.Clone(d.Stats)
	c.Abilities = slices.Clone(d.Abilities)
	c.Raw = slices.Clone(d.Raw)
	return &c
}

func errorMessage(err error, fallback string) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
