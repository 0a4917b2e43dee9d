// Package bridge exposes the orchestrator to the overlay UI: a
// websocket feed pushing orchestrator events out and accepting
// imperative commands back, plus a small HTTP API for session history
// and provider discovery.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/vnrtumu/VenkyAI/core/backend"
	"github.com/vnrtumu/VenkyAI/core/events"
	"github.com/vnrtumu/VenkyAI/core/sessions"
)

// Controller is the slice of the orchestrator surface the overlay
// drives.
type Controller interface {
	StartSession(ctx context.Context, title string, purpose sessions.Purpose, sessionContext string) (sessions.Session, error)
	EndSession(ctx context.Context) error
	StartRecording() error
	StopRecording() error
	StartSystemAudioRecording() error
	StopSystemAudioRecording() error
	StartCapture(interval time.Duration) error
	StopCapture()
	SendChatMessage(ctx context.Context, text string) error
	AskAI(ctx context.Context, question string) (backend.Response, error)
	TranscribeNow(ctx context.Context) (string, error)
	GenerateSummary(ctx context.Context) (string, error)
	ToggleVisibility() bool
}

// SessionLister serves the overlay's session history panel.
type SessionLister interface {
	ListSessions(ctx context.Context) ([]sessions.Summary, error)
	PromptTemplates(ctx context.Context) ([]sessions.PromptTemplate, error)
}

type Config struct {
	Addr       string
	Controller Controller
	Sessions   SessionLister
	Logger     *slog.Logger
}

type Bridge struct {
	addr       string
	controller Controller
	sessions   SessionLister
	logger     *slog.Logger

	upgrader websocket.Upgrader
	server   *http.Server

	mu    sync.Mutex
	conns map[*connection]struct{}
}

func New(cfg Config) (*Bridge, error) {
	if cfg.Controller == nil {
		return nil, fmt.Errorf("controller is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:4931"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Bridge{
		addr:       cfg.Addr,
		controller: cfg.Controller,
		sessions:   cfg.Sessions,
		logger:     cfg.Logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The overlay runs on the same machine.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: map[*connection]struct{}{},
	}, nil
}

// Run serves until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) error {
	router := mux.NewRouter()
	router.HandleFunc("/ws", b.handleWebSocket)
	router.HandleFunc("/api/providers", b.handleProviders).Methods("GET")
	router.HandleFunc("/api/sessions", b.handleListSessions).Methods("GET")
	router.HandleFunc("/api/templates", b.handleTemplates).Methods("GET")

	b.server = &http.Server{
		Addr:    b.addr,
		Handler: router,
	}

	go func() {
		if err := b.server.ListenAndServe(); err != http.ErrServerClosed {
			b.logger.Error("bridge server error", "error", err)
		}
	}()

	<-ctx.Done()
	return b.server.Shutdown(context.Background())
}

// Broadcast pushes one orchestrator event to every connected overlay.
// Wire it as the orchestrator's event callback.
func (b *Bridge) Broadcast(event events.Event) {
	data, err := encodeEvent(event)
	if err != nil {
		b.logger.Warn("failed to encode event for broadcast", "error", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.conns {
		select {
		case conn.send <- data:
		default:
			b.logger.Warn("dropping event for slow overlay connection")
		}
	}
}

func (b *Bridge) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	wsConn := &connection{
		conn:   conn,
		send:   make(chan []byte, 256),
		bridge: b,
	}
	b.register(wsConn)

	go wsConn.writePump()
	go wsConn.readPump()
}

func (b *Bridge) register(conn *connection) {
	b.mu.Lock()
	b.conns[conn] = struct{}{}
	b.mu.Unlock()
}

func (b *Bridge) unregister(conn *connection) {
	b.mu.Lock()
	delete(b.conns, conn)
	b.mu.Unlock()
}

func (b *Bridge) handleProviders(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(backend.Providers()); err != nil {
		b.logger.Error("failed to encode provider list", "error", err)
	}
}

func (b *Bridge) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if b.sessions == nil {
		http.Error(w, "session history not available", http.StatusNotFound)
		return
	}

	summaries, err := b.sessions.ListSessions(r.Context())
	if err != nil {
		b.logger.Error("failed to list sessions", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(summaries); err != nil {
		b.logger.Error("failed to encode session list", "error", err)
	}
}

func (b *Bridge) handleTemplates(w http.ResponseWriter, r *http.Request) {
	if b.sessions == nil {
		http.Error(w, "session history not available", http.StatusNotFound)
		return
	}

	templates, err := b.sessions.PromptTemplates(r.Context())
	if err != nil {
		b.logger.Error("failed to list prompt templates", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(templates); err != nil {
		b.logger.Error("failed to encode prompt templates", "error", err)
	}
}

// runCommand executes one overlay command against the controller.
func (b *Bridge) runCommand(ctx context.Context, cmd Command) CommandResult {
	result := CommandResult{Command: cmd.Command, OK: true}

	var err error
	switch cmd.Command {
	case "start_session":
		var session sessions.Session
		session, err = b.controller.StartSession(ctx, cmd.Title, sessions.Purpose(cmd.Purpose), cmd.Context)
		result.Result = session
	case "end_session":
		err = b.controller.EndSession(ctx)
	case "start_recording":
		err = b.controller.StartRecording()
	case "stop_recording":
		err = b.controller.StopRecording()
	case "start_system_audio":
		err = b.controller.StartSystemAudioRecording()
	case "stop_system_audio":
		err = b.controller.StopSystemAudioRecording()
	case "start_capture":
		interval := time.Duration(cmd.IntervalMs) * time.Millisecond
		err = b.controller.StartCapture(interval)
	case "stop_capture":
		b.controller.StopCapture()
	case "send_chat_message":
		err = b.controller.SendChatMessage(ctx, cmd.Text)
	case "ask":
		var response backend.Response
		response, err = b.controller.AskAI(ctx, cmd.Text)
		result.Result = response
	case "transcribe":
		var text string
		text, err = b.controller.TranscribeNow(ctx)
		result.Result = text
	case "generate_summary":
		var summary string
		summary, err = b.controller.GenerateSummary(ctx)
		result.Result = summary
	case "toggle_overlay":
		result.Result = b.controller.ToggleVisibility()
	default:
		err = fmt.Errorf("unknown command %q", cmd.Command)
	}

	if err != nil {
		result.OK = false
		result.Error = err.Error()
		result.Result = nil
	}
	return result
}
