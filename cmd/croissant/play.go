package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/platform/tui"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round",
	Long: `Start a round in the kitchen.

Controls:
  WASD/Arrows  - Move the croissant
  E            - Put it in the oven (from the top of the kitchen)
  Q            - Take it out of the oven
  R/Space      - Serve (on the serving table)
  F            - Throw it away (over the bin)
  Esc          - End the round
  X/Ctrl+C     - Quit

Difficulty options:
  easy   - Up to 2 tomatoes, a new one every 4 seconds
  hard   - Up to 5 tomatoes, a new one every 2 seconds

Examples:
  croissant play
  croissant play --difficulty hard
  croissant play --seed 42 --config ./my-kitchen.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "easy", "Difficulty preset: easy, hard")
}

func runPlay(_ *cobra.Command, _ []string) error {
	d, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}

	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.close()

	_, err = tui.Run(g.deps(), d, g.rt)
	return err
}
