package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/croissant-rush/internal/config"
	"github.com/vovakirdan/croissant-rush/internal/storage"
)

var (
	flagLimit   int
	flagClear   bool
	flagRecent  bool
	flagSession string
)

var scoresCmd = &cobra.Command{
	Use:   "scores [difficulty]",
	Short: "Show high scores",
	Long: `Display the top scores for one difficulty, or for both when none
is given.

Examples:
  croissant scores
  croissant scores hard --limit 5
  croissant scores easy --clear
  croissant scores --recent
  croissant scores --id 5f0c...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the scores of the difficulty")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest rounds of every difficulty")
	scoresCmd.Flags().StringVar(&flagSession, "id", "", "Show one round in detail")
}

func runScores(_ *cobra.Command, args []string) error {
	difficulties := config.Difficulties
	if len(args) == 1 {
		d, err := config.ParseDifficulty(args[0])
		if err != nil {
			return err
		}
		difficulties = []config.Difficulty{d}
	}

	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if len(args) == 0 {
			return errors.New("--clear needs a difficulty")
		}
		if err := store.ClearScores(string(difficulties[0])); err != nil {
			return err
		}
		logger.Info("scores cleared", "difficulty", difficulties[0])
		return nil
	}

	switch {
	case flagSession != "":
		return printSession(os.Stdout, store, flagSession)
	case flagRecent:
		return printRecent(os.Stdout, store, flagLimit)
	}

	for i, d := range difficulties {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, d); err != nil {
			return err
		}
	}
	return nil
}

func printRecent(w io.Writer, store *storage.Store, limit int) error {
	recent, err := store.RecentSessions(limit)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, "Recent Rounds")
	fmt.Fprintln(w)
	if len(recent) == 0 {
		fmt.Fprintln(w, "No rounds recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-8s  %-10s  %-6s  %-6s  %-7s  %s\n", "ID", "Difficulty", "Score", "Served", "Ended", "Date")
	fmt.Fprintf(w, "  %-8s  %-10s  %-6s  %-6s  %-7s  %s\n", "--", "----------", "-----", "------", "-----", "----")
	for _, s := range recent {
		fmt.Fprintf(w, "  %-8s  %-10s  %-6d  %-6d  %-7s  %s\n",
			shortID(s.ID), s.Difficulty, s.Score, s.Served, s.EndReason, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSession(w io.Writer, store *storage.Store, id string) error {
	rec, err := store.SessionByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("no round with id %q", id)
	}

	fmt.Fprintf(w, "Round %s\n", rec.ID)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Difficulty:   %s\n", rec.Difficulty)
	fmt.Fprintf(w, "  Score:        %d\n", rec.Score)
	fmt.Fprintf(w, "  Served:       %d (%d perfect)\n", rec.Served, rec.Perfect)
	fmt.Fprintf(w, "  Burnt:        %d\n", rec.Burned)
	fmt.Fprintf(w, "  Discarded:    %d\n", rec.Discarded)
	fmt.Fprintf(w, "  Tomatoes hit: %d\n", rec.HazardHits)
	fmt.Fprintf(w, "  Played:       %s (%s)\n", rec.Duration, rec.EndReason)
	fmt.Fprintf(w, "  Date:         %s\n", rec.CreatedAt.Format("2006-01-02 15:04"))
	return nil
}

// shortID trims a session UUID to its first block.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func printScores(store *storage.Store, d config.Difficulty) error {
	scores, err := store.TopScores(string(d), flagLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", d.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Printf("Play 'croissant play --difficulty %s' to set the first high score!\n", d)
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-6s  %s\n", "Rank", "Score", "Served", "Perfect", "Burnt", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-7s  %-6s  %s\n", "----", "-----", "------", "-------", "-----", "----")
	for i, s := range scores {
		fmt.Printf("  %-4d  %-6d  %-6d  %-7d  %-6d  %s\n",
			i+1, s.Score, s.Served, s.Perfect, s.Burned, s.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.Stats(string(d))
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %d  |  Rounds: %d  |  Average: %.0f\n", stats.HighScore, stats.Sessions, stats.AvgScore)
	return nil
}
