package cmd

import (
	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/pokeapi"
	"github.com/s0up4200/pokedex/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Open the interactive browser",
	Long: `Open the interactive browser.

The list loads page by page. Type "/" to search by name, "t" and "g" to cycle
through types and generations, "enter" to open a Pokémon and "q" to quit.
Logs go to logging.file while the browser is open.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func runBrowse(cmd *cobra.Command, args []string) error {
	if logFile != nil {
		defer logFile.Close()
	}

	sprite, err := pokeapi.ParseSpriteKind(cfg.UI.Sprite)
	if err != nil {
		return err
	}

	logger.Info().Str("base_url", client.BaseURL()).Msg("Starting browser")

	return tui.Run(cmd.Context(), pokedex, logger, tui.Config{
		Debounce: cfg.UI.Debounce,
		Sprite:   sprite,
	})
}
