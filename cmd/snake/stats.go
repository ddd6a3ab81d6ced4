package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

var flagStatsRecent int

var statsCmd = &cobra.Command{
	Use:   "stats [player]",
	Short: "Show player or per-mode statistics",
	Long: `With a player name, show that player's totals and recent games.
Without one, show totals for each mode.

Examples:
  snake stats
  snake stats ada --recent 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

var showCmd = &cobra.Command{
	Use:   "show <game-id>",
	Short: "Show one recorded game",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	statsCmd.Flags().IntVar(&flagStatsRecent, "recent", 10, "Number of recent games to list")
}

func runStats(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		stats, err := store.ModeStats()
		if err != nil {
			return err
		}

		fmt.Println("Mode Statistics")
		fmt.Println()
		fmt.Printf("  %-12s  %-6s  %-6s  %-8s  %s\n", "Mode", "Games", "Best", "Average", "Last Played")
		fmt.Printf("  %-12s  %-6s  %-6s  %-8s  %s\n", "----", "-----", "----", "-------", "-----------")
		for _, mode := range snake.Modes() {
			ms, ok := stats[mode]
			if !ok {
				fmt.Printf("  %-12s  %-6d  %-6s  %-8s  %s\n", mode.Title(), 0, "-", "-", "never")
				continue
			}
			fmt.Printf("  %-12s  %-6d  %-6d  %-8.2f  %s\n",
				mode.Title(), ms.GamesCount, ms.HighScore, ms.AvgScore,
				ms.LastPlayed.Format("2006-01-02 15:04"))
		}
		return nil
	}

	player := args[0]
	ps, err := store.PlayerStats(player)
	if err != nil {
		return err
	}

	fmt.Printf("Player: %s\n", ps.Player)
	fmt.Println()
	fmt.Printf("  Games played:  %d\n", ps.GamesPlayed)
	fmt.Printf("  Total score:   %d\n", ps.TotalScore)
	fmt.Printf("  Best score:    %d\n", ps.BestScore)
	fmt.Printf("  Average score: %.2f\n", ps.AverageScore)

	if ps.GamesPlayed == 0 {
		return nil
	}
	fmt.Printf("  Last played:   %s\n", ps.LastPlayed.Format("2006-01-02 15:04"))

	games, err := store.RecentGames(player, flagStatsRecent)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Recent games:")
	fmt.Printf("  %-36s  %-12s  %-6s  %-4s  %-6s  %-15s  %s\n", "ID", "Mode", "Score", "Len", "Time", "Ended by", "Date")
	for _, g := range games {
		fmt.Printf("  %-36s  %-12s  %-6d  %-4d  %-6s  %-15s  %s\n",
			g.ID, g.Mode.Title(), g.Score, g.SnakeLength,
			fmt.Sprintf("%ds", g.DurationSecs), g.Reason,
			g.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runShow(_ *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()

	g, err := store.GameByID(args[0])
	if err != nil {
		return err
	}
	if g == nil {
		return fmt.Errorf("no game with id %q", args[0])
	}

	fmt.Printf("Game %s\n", g.ID)
	fmt.Println()
	fmt.Printf("  Player:     %s\n", g.Player)
	fmt.Printf("  Mode:       %s\n", g.Mode.Title())
	fmt.Printf("  Score:      %d\n", g.Score)
	fmt.Printf("  Length:     %d\n", g.SnakeLength)
	fmt.Printf("  Food eaten: %d\n", g.FoodEaten)
	fmt.Printf("  Moves:      %d\n", g.Moves)
	fmt.Printf("  Duration:   %ds\n", g.DurationSecs)
	fmt.Printf("  Ended by:   %s\n", g.Reason)
	fmt.Printf("  Played:     %s\n", g.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}
