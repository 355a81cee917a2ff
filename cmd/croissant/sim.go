package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/croissant-rush/internal/bakery"
	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/sim"
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Play a seeded round headlessly with a bot",
	Long: `Play a whole round on virtual time with a scripted bot and print
the outcome. The same seed and config always give the same final hash.

Examples:
  croissant sim
  croissant sim --seed 42 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagDifficulty, "difficulty", "easy", "Difficulty preset: easy, hard")
}

func runSim(_ *cobra.Command, _ []string) error {
	d, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	report, err := sim.Run(cfg, d, sim.Options{Seed: seed, Logger: logger})
	if err != nil {
		return err
	}

	res := report.Result
	fmt.Printf("Difficulty: %s\n", d.Title())
	fmt.Printf("Seed:       %d\n", seed)
	fmt.Printf("Played:     %s (%d frames)\n", bakery.FormatClock(res.Played), report.Frames)
	fmt.Printf("Score:      %d\n", res.Score)
	fmt.Printf("Served:     %d (perfect %d)\n", res.Stats.Served, res.Stats.Perfect)
	fmt.Printf("Burnt:      %d  Trashed: %d  Tomatoes: %d\n", res.Stats.Burned, res.Stats.Discarded, res.Stats.HazardHits)

	names := make([]string, 0, len(report.Events))
	for name := range report.Events {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Print("Events:    ")
	for _, name := range names {
		fmt.Printf(" %s=%d", name, report.Events[name])
	}
	fmt.Println()
	fmt.Printf("Hash:       %016x\n", report.Hash())
	return nil
}
