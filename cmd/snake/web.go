package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-arena/internal/platform/web"
)

var flagWebAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the snake WebSocket server",
	Long: `Start an HTTP server with a browser client at / and the game
WebSocket at /ws.

Each connection plays its own game. Clients send JSON actions
(start, direction, pause, reset) and receive state, food, game_over and
error messages. Pass ?name=<player> on the /ws URL, or a "name" field in
the start message, to record scores under a name.

Examples:
  snake web
  snake web --addr :9000 --speed slow`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagWebAddr, "addr", "", "HTTP listen address (default from config, :8080)")
}

func runWeb(_ *cobra.Command, _ []string) error {
	logger := newLogger("snake-web")

	cfg := web.DefaultConfig()
	cfg.Address = appConfig.Server.WebAddr
	cfg.GridSize = appConfig.Board.GridSize
	cfg.TickInterval = appConfig.TickInterval()
	cfg.Seed = flagSeed
	cfg.DefaultMode = appConfig.Mode()
	if flagWebAddr != "" {
		cfg.Address = flagWebAddr
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("cannot open scores database: %w", err)
	}
	defer store.Close()
	cfg.Saver = store

	server := web.NewServer(cfg, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Open http://localhost:%s in your browser\n", portOf(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
