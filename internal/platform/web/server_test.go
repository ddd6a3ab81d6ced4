package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/snake-arena/internal/snake"
)

type recordingSaver struct {
	mu      sync.Mutex
	players []string
	results []snake.Summary
}

func (r *recordingSaver) SaveResult(player string, s snake.Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players = append(r.players, player)
	r.results = append(r.results, s)
	return nil
}

func (r *recordingSaver) snapshot() ([]string, []snake.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.players...), append([]snake.Summary(nil), r.results...)
}

// received mirrors ServerMessage with plain fields for decoding.
type received struct {
	Type    string `json:"type"`
	Session string `json:"session"`
	State   *struct {
		Phase     string `json:"phase"`
		Mode      string `json:"mode"`
		Direction string `json:"direction"`
		Ticks     int    `json:"ticks"`
		Score     int    `json:"score"`
	} `json:"state"`
	Score   int    `json:"score"`
	Player  string `json:"player"`
	Summary *struct {
		Mode            string `json:"mode"`
		Score           int    `json:"score"`
		Reason          string `json:"reason"`
		DurationSeconds int    `json:"duration_seconds"`
	} `json:"summary"`
	Message string `json:"message"`
}

func newTestServer(t *testing.T, saver *recordingSaver) (*Server, *httptest.Server) {
	t.Helper()

	cfg := Config{
		GridSize:     10,
		TickInterval: 5 * time.Millisecond,
		Seed:         1,
		DefaultMode:  snake.ModeWalls,
	}
	if saver != nil {
		cfg.Saver = saver
	}
	srv := NewServer(cfg, log.NewWithOptions(io.Discard, log.Options{}))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

// readUntil reads messages until match returns true.
func readUntil(t *testing.T, conn *websocket.Conn, match func(received) bool) received {
	t.Helper()

	deadline := time.Now().Add(3 * time.Second)
	for {
		if err := conn.SetReadDeadline(deadline); err != nil {
			t.Fatal(err)
		}
		var msg received
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("read: %v", err)
		}
		if match(msg) {
			return msg
		}
	}
}

func ofType(typ string) func(received) bool {
	return func(m received) bool { return m.Type == typ }
}

func TestHelloThenInitialState(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	var hello received
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatal(err)
	}
	if hello.Type != TypeHello || hello.Session == "" {
		t.Fatalf("first message = %+v, expected hello with a session id", hello)
	}

	st := readUntil(t, conn, ofType(TypeState))
	if st.State == nil || st.State.Phase != "not_started" {
		t.Errorf("initial state = %+v", st.State)
	}
}

func TestPlayToGameOver(t *testing.T) {
	saver := &recordingSaver{}
	_, ts := newTestServer(t, saver)
	conn := dial(t, ts, "?name=ann")

	if err := conn.WriteJSON(ClientMessage{Action: ActionStart, Mode: "walls"}); err != nil {
		t.Fatal(err)
	}

	playing := readUntil(t, conn, func(m received) bool {
		return m.Type == TypeState && m.State.Phase == "playing"
	})
	if playing.State.Mode != "walls" {
		t.Errorf("mode = %q", playing.State.Mode)
	}

	over := readUntil(t, conn, ofType(TypeGameOver))
	if over.Player != "ann" {
		t.Errorf("player = %q, expected ann", over.Player)
	}
	if over.Summary == nil || over.Summary.Reason != "wall_collision" || over.Summary.Mode != "walls" {
		t.Errorf("summary = %+v", over.Summary)
	}

	players, results := saver.snapshot()
	if len(results) != 1 || players[0] != "ann" {
		t.Errorf("saved %v / %d results", players, len(results))
	}
}

func TestStartAgainAfterGameOver(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	if err := conn.WriteJSON(ClientMessage{Action: ActionStart, Mode: "walls"}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, ofType(TypeGameOver))

	if err := conn.WriteJSON(ClientMessage{Action: ActionStart, Mode: "walls"}); err != nil {
		t.Fatal(err)
	}
	msg := readUntil(t, conn, func(m received) bool {
		return m.Type == TypeError || (m.Type == TypeState && m.State.Phase == "playing")
	})
	if msg.Type == TypeError {
		t.Fatalf("second start rejected: %s", msg.Message)
	}
	if msg.State.Score != 0 {
		t.Errorf("score = %d after restart", msg.State.Score)
	}
}

func TestStartNameOverridesQuery(t *testing.T) {
	saver := &recordingSaver{}
	_, ts := newTestServer(t, saver)
	conn := dial(t, ts, "?name=ann")

	if err := conn.WriteJSON(ClientMessage{Action: ActionStart, Name: "ben"}); err != nil {
		t.Fatal(err)
	}

	over := readUntil(t, conn, ofType(TypeGameOver))
	if over.Player != "ben" {
		t.Errorf("player = %q, expected ben", over.Player)
	}
	if over.Summary.Mode != "walls" {
		t.Errorf("default mode = %q, expected walls", over.Summary.Mode)
	}
}

func TestDirectionAndPause(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	if err := conn.WriteJSON(ClientMessage{Action: ActionStart, Mode: "pass-through"}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, func(m received) bool {
		return m.Type == TypeState && m.State.Phase == "playing"
	})

	if err := conn.WriteJSON(ClientMessage{Action: ActionDirection, Direction: "up"}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, func(m received) bool {
		return m.Type == TypeState && m.State.Direction == "UP"
	})

	if err := conn.WriteJSON(ClientMessage{Action: ActionPause}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, func(m received) bool {
		return m.Type == TypeState && m.State.Phase == "paused"
	})

	if err := conn.WriteJSON(ClientMessage{Action: ActionReset}); err != nil {
		t.Fatal(err)
	}
	readUntil(t, conn, func(m received) bool {
		return m.Type == TypeState && m.State.Phase == "not_started"
	})
}

func TestRejectedMessages(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")

	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"malformed", `{"action":`, "malformed message"},
		{"unknown action", `{"action":"jump"}`, "unknown action"},
		{"bad mode", `{"action":"start","mode":"maze"}`, "invalid game mode"},
		{"bad direction", `{"action":"direction","direction":"north"}`, "unknown direction"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tc.payload)); err != nil {
				t.Fatal(err)
			}
			msg := readUntil(t, conn, ofType(TypeError))
			if !strings.Contains(msg.Message, tc.want) {
				t.Errorf("error = %q, expected it to contain %q", msg.Message, tc.want)
			}
		})
	}
}

func TestShutdownClosesConnections(t *testing.T) {
	srv, ts := newTestServer(t, nil)
	conn := dial(t, ts, "")
	readUntil(t, conn, ofType(TypeState))

	done := make(chan error, 1)
	go func() { done <- srv.Shutdown() }()

	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatal(err)
	}
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
				t.Errorf("expected going-away close, got %v", err)
			}
			break
		}
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Shutdown: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Shutdown did not return")
	}
}

func TestStaticRoutes(t *testing.T) {
	_, ts := newTestServer(t, nil)

	tests := []struct {
		path string
		want string
	}{
		{"/healthz", "ok"},
		{"/", "S N A K E"},
	}

	for _, tc := range tests {
		resp, err := http.Get(ts.URL + tc.path)
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s = %d", tc.path, resp.StatusCode)
		}
		if !strings.Contains(string(body), tc.want) {
			t.Errorf("GET %s missing %q", tc.path, tc.want)
		}
	}
}
