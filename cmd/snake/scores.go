package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

var (
	flagScoresMode  string
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the top scores, across all modes or for one mode.
Games that scored nothing are not ranked.

Examples:
  snake scores
  snake scores --mode walls --limit 20
  snake scores --mode pass-through --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresMode, "mode", "", "Only show one mode: walls, pass-through")
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of entries to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded games instead of listing them")
}

func runScores(_ *cobra.Command, _ []string) error {
	var mode snake.Mode
	title := "All Modes"
	if flagScoresMode != "" {
		m, err := snake.ParseMode(flagScoresMode)
		if err != nil {
			return fmt.Errorf("unknown mode %q (want walls or pass-through)", flagScoresMode)
		}
		mode = m
		title = m.Title()
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearScores(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared scores - %s\n", title)
		return nil
	}

	scores, err := store.TopScores(mode, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'snake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-12s  %-6s  %-4s  %s\n", "Rank", "Player", "Mode", "Score", "Len", "Date")
	fmt.Printf("  %-4s  %-16s  %-12s  %-6s  %-4s  %s\n", "----", "------", "----", "-----", "---", "----")

	for _, entry := range scores {
		fmt.Printf("  %-4d  %-16s  %-12s  %-6d  %-4d  %s\n",
			entry.Rank,
			truncate(entry.Player, 16),
			entry.Mode.Title(),
			entry.Score,
			entry.SnakeLength,
			entry.CreatedAt.Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	fmt.Printf("Best: %d\n", scores[0].Score)
	return nil
}

// truncate shortens s to n runes, marking the cut with ~.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
