// Package web serves snake games to browsers over WebSocket. Each
// connection gets its own session loop; the page at / is a small canvas
// client for it.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/session"
	"github.com/vovakirdan/snake-arena/internal/snake"
)

//go:embed static
var staticFiles embed.FS

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 1024
	sinkBuffer     = 64
)

// Config holds configuration for the WebSocket server.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	GridSize     int
	TickInterval time.Duration

	// Seed fixes the food sequence of every game. Zero means random.
	Seed int64

	// DefaultMode is used when a start message names no mode.
	DefaultMode snake.Mode

	// Saver records finished games. Optional.
	Saver session.ResultSaver
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	rc := core.DefaultConfig()
	return Config{
		Address:      ":8080",
		GridSize:     rc.GridSize,
		TickInterval: rc.TickInterval,
		DefaultMode:  snake.ModeWalls,
	}
}

// Server accepts browser connections and runs one game per connection.
type Server struct {
	config   Config
	upgrader websocket.Upgrader
	logger   *log.Logger
	http     *http.Server

	// ctx is cancelled on shutdown; hijacked connections are not closed
	// by http.Server.Shutdown.
	ctx    context.Context
	cancel context.CancelFunc
	conns  sync.WaitGroup
}

// NewServer creates a server. logger may be nil.
func NewServer(cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-web",
		})
	}
	if !cfg.DefaultMode.Valid() {
		cfg.DefaultMode = snake.ModeWalls
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		config: cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The client may be served from anywhere; there is no auth to protect.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
	s.http = &http.Server{
		Addr:              cfg.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP routes: /ws, /healthz and the static client.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	static, err := fs.Sub(staticFiles, "static")
	if err == nil {
		mux.Handle("/", http.FileServer(http.FS(static)))
	}
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting web server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown stops accepting connections and ends every running game.
func (s *Server) Shutdown() error {
	s.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := s.http.Shutdown(ctx)
	s.conns.Wait()
	return err
}

// Addr returns the server's listen address string.
func (s *Server) Addr() string {
	return s.config.Address
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "err", err)
		return
	}
	s.conns.Add(1)
	defer s.conns.Done()
	defer conn.Close()

	seed := s.config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	engine := snake.NewEngine(snake.Config{GridSize: s.config.GridSize, Seed: seed})
	sink := session.NewChannelSink(sinkBuffer)
	defer sink.Close()

	loop := session.NewLoop(engine, sink, session.Config{
		Player:       strings.TrimSpace(r.URL.Query().Get("name")),
		TickInterval: s.config.TickInterval,
		Saver:        s.config.Saver,
		Logger:       s.logger,
	})
	logger := s.logger.With("session", loop.ID(), "remote", r.RemoteAddr)
	logger.Info("client connected")

	ctx, cancel := context.WithCancel(s.ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("session failed", "err", err)
		}
	}()
	go func() {
		defer wg.Done()
		defer cancel()
		s.writePump(ctx, conn, loop.ID(), sink, logger)
	}()

	s.readPump(conn, loop, sink, logger)

	cancel()
	sink.Close()
	wg.Wait()
	logger.Info("client disconnected")
}

// readPump dispatches client messages until the connection fails.
func (s *Server) readPump(conn *websocket.Conn, loop *session.Loop, sink session.Sink, logger *log.Logger) {
	conn.SetReadLimit(maxMessageSize)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("read failed", "err", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			sink.Send(session.ErrorEvent{Message: "malformed message"})
			continue
		}
		if err := s.dispatch(loop, msg); err != nil {
			logger.Debug("rejected message", "action", msg.Action, "err", err)
			sink.Send(session.ErrorEvent{Message: err.Error()})
		}
	}
}

func (s *Server) dispatch(loop *session.Loop, msg ClientMessage) error {
	switch msg.Action {
	case ActionStart:
		mode := s.config.DefaultMode
		if msg.Mode != "" {
			parsed, err := snake.ParseMode(msg.Mode)
			if err != nil {
				return err
			}
			mode = parsed
		}
		if name := strings.TrimSpace(msg.Name); name != "" {
			loop.SetPlayer(name)
		}
		loop.Start(mode)
	case ActionDirection:
		dir, err := core.ParseDirection(msg.Direction)
		if err != nil {
			return err
		}
		loop.Turn(dir)
	case ActionPause:
		loop.TogglePause()
	case ActionReset:
		loop.Reset()
	default:
		return fmt.Errorf("web: unknown action %q", msg.Action)
	}
	return nil
}

// writePump is the only goroutine that writes to conn.
func (s *Server) writePump(ctx context.Context, conn *websocket.Conn, id string, sink *session.ChannelSink, logger *log.Logger) {
	if err := s.write(conn, ServerMessage{Type: TypeHello, Session: id}); err != nil {
		logger.Warn("write failed", "err", err)
		return
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server closing"),
				time.Now().Add(writeWait))
			// Unblocks readPump.
			_ = conn.Close()
			return

		case evt := <-sink.Events():
			msg, ok := toMessage(evt)
			if !ok {
				continue
			}
			if err := s.write(conn, msg); err != nil {
				logger.Warn("write failed", "err", err)
				_ = conn.Close()
				return
			}
		}
	}
}

func (s *Server) write(conn *websocket.Conn, msg ServerMessage) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}
