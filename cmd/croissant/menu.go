package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/croissant-rush/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a difficulty menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a round, press M to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - High scores
  Q            - Quit

Examples:
  croissant menu
  croissant menu --db ./scores.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	g, err := openGame()
	if err != nil {
		return err
	}
	defer g.close()

	for {
		res, err := tui.RunMenu(g.store, g.rt)
		if err != nil {
			return err
		}
		g.rt = res.Config

		if res.Quit {
			return nil
		}

		if res.WantsScoreboard {
			goBack, err := tui.RunScoreboard(g.store, g.rt.ScreenW, g.rt.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		toMenu, err := tui.Run(g.deps(), res.Difficulty, g.rt)
		if err != nil {
			return err
		}
		if !toMenu {
			return nil
		}
	}
}
