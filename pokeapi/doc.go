// Package pokeapi provides a read-only client for the PokéAPI REST service.
//
// The client issues GET requests against a fixed base URL and normalizes
// non-success responses into typed errors. It holds no state besides its
// configuration and is safe for concurrent use.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := pokeapi.NewClient(
//		pokeapi.DefaultBaseURL,
//		logger,
//		pokeapi.WithTimeout(15*time.Second),
//		pokeapi.WithSearchLimit(2000),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	page, err := client.ListPokemon(ctx, 0, 20)
//
// # Error Handling
//
// Failures are returned unmodified to the caller; the client never retries.
//
//   - ValidationError: a required argument was empty, no request was made
//   - NotFoundError: a single-entity lookup returned 404
//   - FetchError: any other non-2xx status, carrying status code and text
//
// Transport failures (connection refused, DNS, timeouts) are wrapped and
// returned as-is. All typed errors match their sentinel with errors.Is:
//
//	var nf *pokeapi.NotFoundError
//	if errors.As(err, &nf) {
//		// unknown Pokémon
//	}
package pokeapi
