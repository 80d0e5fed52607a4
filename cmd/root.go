package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/config"
	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/store"
)

var (
	cfgFile string
	baseURL string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *pokeapi.Client
	pokedex *store.Store

	// logFile is the browser log destination, nil when logs are discarded
	logFile io.Closer
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pokedex",
	Short: "Browse and filter Pokémon from PokéAPI",
	Long: `pokedex is a terminal client for PokéAPI. It lists the Pokémon collection
page by page, filters it by name, type or generation, and shows the full
record of a single Pokémon.

Use "pokedex browse" to open the interactive browser.`,
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "override pokeapi.base_url")

	// Add subcommands
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(filterCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(generationsCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)
}

// initializeApp initializes the configuration, the API client and the store
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Override base URL from command line if specified
	if baseURL != "" {
		cfg.PokeAPI.BaseURL = baseURL
	}

	// Setup logger. The browser owns the terminal, so it logs to a file.
	if cmd == browseCmd {
		out, closer, err := openLogFile(cfg.Logging.File)
		if err != nil {
			return err
		}
		logFile = closer
		logger = setupLogger(cfg.Logging, out, false)
	} else {
		logger = setupLogger(cfg.Logging, os.Stderr, isatty.IsTerminal(os.Stderr.Fd()))
	}

	if cfg.Source != "" {
		logger.Debug().Str("config", cfg.Source).Msg("Loaded configuration")
	}

	// Create PokéAPI client
	client, err = pokeapi.NewClient(cfg.PokeAPI.BaseURL, logger,
		pokeapi.WithTimeout(cfg.PokeAPI.Timeout),
		pokeapi.WithSearchLimit(cfg.PokeAPI.SearchLimit),
		pokeapi.WithRateLimit(cfg.PokeAPI.RateLimit, cfg.PokeAPI.RateBurst),
		pokeapi.WithUserAgent(cfg.PokeAPI.UserAgent),
	)
	if err != nil {
		return fmt.Errorf("failed to create PokéAPI client: %w", err)
	}

	pokedex = store.New(client, logger, store.WithPageSize(cfg.Store.PageSize))

	return nil
}

// openLogFile opens path for appending. An empty path discards the log.
func openLogFile(path string) (io.Writer, io.Closer, error) {
	if path == "" {
		return io.Discard, nil, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, f, nil
}

// setupLogger configures the zerolog logger. Colour is only used when out
// is a terminal.
func setupLogger(cfg config.LoggingConfig, out io.Writer, terminal bool) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !terminal,
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// stateError turns a message recorded by the store into a command error
func stateError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}
