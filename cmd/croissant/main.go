// croissant is a terminal bakery game: bake croissants to perfection, dodge
// flying tomatoes and serve before the clock runs out.
//
// Usage:
//
//	croissant play            - Play a round
//	croissant menu            - Start menu to pick a difficulty interactively
//	croissant scores          - Show high scores
//	croissant sim             - Play a seeded round headlessly with a bot
//
// Global flags:
//
//	--fps <rate>      - Set key sampling rate (default: 33)
//	--seed <value>    - Set RNG seed for reproducible sessions
//	--db <path>       - Set database path (default: ~/.croissant/scores.db)
//	--config <path>   - Use a custom kitchen config YAML
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
	flagDebug   bool
	flagVolume  float64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "croissant",
	Short: "Croissant Rush - bake and serve croissants in your terminal",
	Long: `Croissant Rush is a terminal bakery game. Carry each croissant up
into the oven, take it out once it is golden, and serve it before the
round ends. Tomatoes flying around the kitchen burn whatever they hit.

Available commands:
  play     - Play a round directly
  menu     - Interactive difficulty menu
  scores   - View high scores
  sim      - Play a seeded round headlessly

Examples:
  croissant play --difficulty hard
  croissant menu
  croissant scores easy
  croissant sim --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 33, "Key sampling rate (per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.croissant/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom kitchen config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")
	rootCmd.PersistentFlags().Float64Var(&flagVolume, "volume", 0.5, "Sound volume from 0 (off) to 1")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}
