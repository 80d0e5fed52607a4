package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public PokéAPI v2 endpoint
	DefaultBaseURL = "https://pokeapi.co/api/v2/"

	// DefaultSearchLimit covers the full Pokémon dataset in one page
	DefaultSearchLimit = 2000

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pokedex"
)

// Client represents a PokéAPI client
type Client struct {
	baseURL     string
	httpClient  *http.Client
	limiter     *rate.Limiter
	timeout     time.Duration
	searchLimit int
	userAgent   string
	logger      zerolog.Logger
}

// NewClient creates a new PokéAPI client
func NewClient(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("pokeapi base URL is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid pokeapi base URL: %s", baseURL)
	}

	// Endpoints are appended directly, so the base must end with a slash
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		searchLimit: DefaultSearchLimit,
		userAgent:   defaultUserAgent,
		logger:      logger,
	}

	for _, opt := range opts {
		opt(client)
	}

	// An explicit timeout applies to whichever HTTP client the options
	// settled on. A caller's client is copied, never modified.
	if client.timeout > 0 && client.httpClient.Timeout != client.timeout {
		httpClient := *client.httpClient
		httpClient.Timeout = client.timeout
		client.httpClient = &httpClient
	}

	return client, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// response is a raw API answer
type response struct {
	statusCode int
	statusText string
	body       []byte
}

func (r *response) ok() bool {
	return r.statusCode >= 200 && r.statusCode < 300
}

// fetchError builds the generic failure for a non-2xx response
func (r *response) fetchError(message string) error {
	return &FetchError{
		Message:    message,
		StatusCode: r.statusCode,
		StatusText: r.statusText,
	}
}

// doRequest performs a GET request. Only transport failures are returned as
// errors; status classification is left to the caller.
func (c *Client) doRequest(ctx context.Context, requestURL string) (*response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	requestID := uuid.NewString()
	start := time.Now()

	c.logger.Debug().
		Str("request_id", requestID).
		Str("url", requestURL).
		Msg("Making PokéAPI request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.logger.Debug().
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Int("bytes", len(body)).
		Msg("PokéAPI response")

	return &response{
		statusCode: resp.StatusCode,
		statusText: statusText(resp),
		body:       body,
	}, nil
}

// statusText returns the reason phrase of the response
func statusText(resp *http.Response) string {
	text := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode))
	text = strings.TrimSpace(text)
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// getJSON fetches requestURL and decodes a successful body into out. Non-2xx
// answers are converted by onStatus.
func (c *Client) getJSON(ctx context.Context, op, requestURL string, out any, onStatus func(*response) error) error {
	resp, err := c.doRequest(ctx, requestURL)
	if err != nil {
		return c.fail(op, err)
	}

	if !resp.ok() {
		return c.fail(op, onStatus(resp))
	}

	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], resp.body...)
		return nil
	}

	if err := json.Unmarshal(resp.body, out); err != nil {
		return c.fail(op, fmt.Errorf("failed to parse response: %w", err))
	}

	return nil
}

// fail logs err for diagnostics and returns it unchanged
func (c *Client) fail(op string, err error) error {
	c.logger.Debug().Err(err).Str("op", op).Msg("PokéAPI call failed")
	return err
}

// genericFailure returns an onStatus handler producing a FetchError
func genericFailure(message string) func(*response) error {
	return func(r *response) error {
		return r.fetchError(message)
	}
}

// ListPokemon retrieves a page of Pokémon summaries
func (c *Client) ListPokemon(ctx context.Context, offset, limit int) ([]PokemonSummary, error) {
	requestURL := fmt.Sprintf("%spokemon?offset=%d&limit=%d", c.baseURL, offset, limit)

	var page resourceList
	if err := c.getJSON(ctx, "ListPokemon", requestURL, &page,
		genericFailure("Error al obtener la lista de Pokémon")); err != nil {
		return nil, err
	}

	c.logger.Debug().
		Int("offset", offset).
		Int("limit", limit).
		Int("count", len(page.Results)).
		Msg("Retrieved Pokémon page")

	return page.Results, nil
}

// GetPokemonDetails retrieves the full record of a Pokémon by name or id.
// The identifier is lower-cased before the request.
func (c *Client) GetPokemonDetails(ctx context.Context, nameOrID string) (*PokemonDetails, error) {
	if nameOrID == "" {
		return nil, c.fail("GetPokemonDetails", &ValidationError{Message: "Se requiere un nombre o ID de Pokémon."})
	}

	requestURL := c.baseURL + "pokemon/" + url.PathEscape(strings.ToLower(nameOrID))

	var raw json.RawMessage
	err := c.getJSON(ctx, "GetPokemonDetails", requestURL, &raw, func(r *response) error {
		if r.statusCode == http.StatusNotFound {
			return &NotFoundError{Identifier: nameOrID}
		}
		return r.fetchError(fmt.Sprintf("Error al obtener los detalles del Pokémon %s", nameOrID))
	})
	if err != nil {
		return nil, err
	}

	var details PokemonDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil, c.fail("GetPokemonDetails", fmt.Errorf("failed to parse response: %w", err))
	}
	details.Raw = raw

	return &details, nil
}

// GetFromURL fetches an arbitrary API URL verbatim and decodes the body into out
func (c *Client) GetFromURL(ctx context.Context, resourceURL string, out any) error {
	if resourceURL == "" {
		return c.fail("GetFromURL", &ValidationError{Message: "Se requiere una URL."})
	}

	return c.getJSON(ctx, "GetFromURL", resourceURL, out,
		genericFailure(fmt.Sprintf("Error al obtener datos de %s", resourceURL)))
}

// ListTypes retrieves every Pokémon type
func (c *Client) ListTypes(ctx context.Context) ([]NamedResource, error) {
	var list resourceList
	if err := c.getJSON(ctx, "ListTypes", c.baseURL+"type", &list,
		genericFailure("Error al obtener tipos de Pokémon")); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// ListGenerations retrieves every generation
func (c *Client) ListGenerations(ctx context.Context) ([]NamedResource, error) {
	var list resourceList
	if err := c.getJSON(ctx, "ListGenerations", c.baseURL+"generation", &list,
		genericFailure("Error al obtener generaciones de Pokémon")); err != nil {
		return nil, err
	}
	return list.Results, nil
}

// SearchByName downloads the whole collection in one page and keeps the
// entries whose name contains fragment, ignoring case.
func (c *Client) SearchByName(ctx context.Context, fragment string) ([]PokemonSummary, error) {
	requestURL := fmt.Sprintf("%spokemon?limit=%d", c.baseURL, c.searchLimit)

	var list resourceList
	if err := c.getJSON(ctx, "SearchByName", requestURL, &list,
		genericFailure("Error al buscar Pokémon")); err != nil {
		return nil, err
	}

	needle := strings.ToLower(fragment)
	matches := make([]PokemonSummary, 0)
	for _, p := range list.Results {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}

	c.logger.Debug().
		Str("fragment", fragment).
		Int("scanned", len(list.Results)).
		Int("matches", len(matches)).
		Msg("Searched Pokémon by name")

	return matches, nil
}

// ListByType retrieves the Pokémon having the given type
func (c *Client) ListByType(ctx context.Context, typeName string) ([]TypeEntry, error) {
	requestURL := c.baseURL + "type/" + url.PathEscape(typeName)

	var resource typeResource
	if err := c.getJSON(ctx, "ListByType", requestURL, &resource,
		genericFailure(fmt.Sprintf("Error al obtener Pokémon por tipo %s", typeName))); err != nil {
		return nil, err
	}
	return resource.Pokemon, nil
}

// ListByGeneration retrieves the species introduced in the given
// generation. The returned URLs point at pokemon-species resources.
func (c *Client) ListByGeneration(ctx context.Context, generation string) ([]NamedResource, error) {
	requestURL := c.baseURL + "generation/" + url.PathEscape(generation)

	var resource generationResource
	if err := c.getJSON(ctx, "ListByGeneration", requestURL, &resource,
		genericFailure(fmt.Sprintf("Error al obtener Pokémon por generación %s", generation))); err != nil {
		return nil, err
	}
	return resource.PokemonSpecies, nil
}
