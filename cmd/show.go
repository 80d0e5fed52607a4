package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/s0up4200/pokedex/pokeapi"
)

var showSprite string

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show the details of a Pokémon",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().StringVar(&showSprite, "sprite", "", "sprite to print (front_default, back_default, front_shiny, back_shiny)")
}

func runShow(cmd *cobra.Command, args []string) error {
	name := args[0]
	if name == "" {
		return fmt.Errorf("a Pokémon name or id is required")
	}

	spriteName := cfg.UI.Sprite
	if showSprite != "" {
		spriteName = showSprite
	}
	sprite, err := pokeapi.ParseSpriteKind(spriteName)
	if err != nil {
		return err
	}

	pokedex.FetchDetails(cmd.Context(), name)

	st := pokedex.Snapshot().Details
	if err := stateError(st.Error); err != nil {
		return err
	}

	printDetails(cmd.OutOrStdout(), st.Current, sprite)
	return nil
}
