package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"prison-admin/internal/console"
	"prison-admin/internal/modal"
	"prison-admin/internal/notify"
	"prison-admin/internal/state"
	"prison-admin/internal/view"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // The UI is served locally
	},
}

// Snapshot is everything the browser renders: the session state plus the
// transient toasts and overlay.
type Snapshot struct {
	state.SnapshotData
	Toasts []notify.Toast `json:"toasts"`
	Modal  view.Modal     `json:"modal"`
}

// Options configures a Server.
type Options struct {
	Console  *console.Console
	State    *state.AppState
	Notifier *notify.Notifier
	Modal    *modal.Controller
	Metrics  http.Handler // Served at /metrics when set
	Port     string
	Version  string
}

// Server serves the web UI, its JSON endpoints and the websocket push.
type Server struct {
	console   *console.Console
	appState  *state.AppState
	notifier  *notify.Notifier
	modal     *modal.Controller
	metrics   http.Handler
	port      string
	version   string
	clients   map[*websocket.Conn]bool
	clientsMu sync.RWMutex
	broadcast chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a new web server and starts its broadcast loops.
func New(opts Options) *Server {
	s := &Server{
		console:   opts.Console,
		appState:  opts.State,
		notifier:  opts.Notifier,
		modal:     opts.Modal,
		metrics:   opts.Metrics,
		port:      opts.Port,
		version:   opts.Version,
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan []byte, 256),
		done:      make(chan struct{}),
	}

	// Start broadcast handler
	go s.handleBroadcasts()

	// Start state change monitor
	go s.monitorStateChanges()

	return s
}

// Handler returns the router with every endpoint mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleUI)
	r.Get("/ws", s.handleWebSocket)
	r.Get("/healthz", s.handleHealthz)
	if s.metrics != nil {
		r.Handle("/metrics", s.metrics)
	}

	r.Route("/ui", func(r chi.Router) {
		r.Get("/state", s.handleState)
		r.Post("/navigate", s.handleNavigate)
		r.Get("/dashboard", s.handleDashboard)

		r.Get("/lists/{entity}", s.handleList)
		r.Post("/lists/{entity}/search", s.handleSearch)
		r.Post("/lists/{entity}/filter", s.handleFilter)
		r.Post("/lists/{entity}/page", s.handlePage)

		r.Get("/forms/{entity}", s.handleOpenForm)
		r.Post("/forms/{entity}", s.handleSubmitForm)
		r.Delete("/records/{entity}/{id}", s.handleDelete)
		r.Get("/prisoners/{id}/detail", s.handlePrisonerDetail)

		r.Route("/modal", func(r chi.Router) {
			r.Post("/close", s.handleModalClose)
			r.Post("/key", s.handleModalKey)
			r.Post("/click", s.handleModalClick)
		})

		r.Get("/reports/{name}", s.handleReport)
		r.Delete("/toasts/{id}", s.handleDismissToast)
	})
	return r
}

// Start serves HTTP until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf(":%s", s.port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	slog.Info("Web UI listening", "address", addr, "component", "Web")

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Close()
		if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Close stops the broadcast loops and drops websocket clients.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.clientsMu.Lock()
		for c := range s.clients {
			c.Close()
			delete(s.clients, c)
		}
		s.clientsMu.Unlock()
	})
}

// Snapshot returns the current view of the session.
func (s *Server) Snapshot() Snapshot {
	return Snapshot{
		SnapshotData: s.appState.Snapshot(),
		Toasts:       s.notifier.Active(),
		Modal:        s.modal.Current(),
	}
}

// handleWebSocket upgrades HTTP connection to WebSocket and manages client lifecycle.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err, "component", "Web")
		return
	}
	defer conn.Close()

	// Send initial state before registering so the broadcast loop never
	// writes to the connection concurrently.
	if data, err := json.Marshal(s.Snapshot()); err == nil {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	slog.Debug("WebSocket client connected", "component", "Web")

	// Wait for client disconnect
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	s.clientsMu.Lock()
	delete(s.clients, conn)
	s.clientsMu.Unlock()

	slog.Debug("WebSocket client disconnected", "component", "Web")
}

// handleBroadcasts sends state updates to all connected WebSocket clients.
func (s *Server) handleBroadcasts() {
	for {
		select {
		case <-s.done:
			return
		case message := <-s.broadcast:
			s.clientsMu.Lock()
			for client := range s.clients {
				if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
					client.Close()
					delete(s.clients, client)
				}
			}
			s.clientsMu.Unlock()
		}
	}
}

// monitorStateChanges broadcasts the snapshot on any mutation of the
// session, the toasts or the overlay, with a 1-second ticker as a
// fallback that also catches toast expiry.
func (s *Server) monitorStateChanges() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	var lastHash uint64
	maybeBroadcast := func() {
		data, err := json.Marshal(s.Snapshot())
		if err != nil {
			slog.Error("Snapshot encoding failed", "error", err, "component", "Web")
			return
		}
		if h := hashSnapshot(data); h != lastHash {
			lastHash = h
			select {
			case s.broadcast <- data:
			default:
				// Channel full, skip
			}
		}
	}

	for {
		select {
		case <-s.done:
			return
		case <-s.appState.ChangeCh():
			maybeBroadcast()
		case <-s.notifier.ChangeCh():
			maybeBroadcast()
		case <-s.modal.ChangeCh():
			maybeBroadcast()
		case <-ticker.C:
			maybeBroadcast()
		}
	}
}

// hashSnapshot fingerprints an encoded snapshot for change detection.
func hashSnapshot(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)
	return h.Sum64()
}
