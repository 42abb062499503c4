// Package server is the HTTP surface over the ledger: the board page, the
// JSON API, the login gate, and the admin user-management endpoints.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/ledger"
)

//go:embed templates/board.html
var templateFS embed.FS

// SessionCookie is the name of the opaque session cookie.
const SessionCookie = "suncarts_session"

// Server wires the mux, the ledger, and the auth collaborators.
type Server struct {
	mux      *http.ServeMux
	log      *slog.Logger
	ledger   *ledger.Ledger
	users    *auth.Manager
	sessions *auth.Sessions
	gated    bool
	board    *template.Template
	clock    ledger.Clock
}

// Config carries the server's collaborators.
type Config struct {
	Logger   *slog.Logger
	Ledger   *ledger.Ledger
	Users    *auth.Manager
	Sessions *auth.Sessions

	// AuthEnabled gates mutating endpoints behind a session. When false,
	// updates are attributed to the Unknown actor.
	AuthEnabled bool

	// Clock stamps the report; nil means the system clock.
	Clock ledger.Clock
}

// New builds the server and its routes.
func New(cfg Config) (*Server, error) {
	if cfg.Ledger == nil {
		return nil, fmt.Errorf("new server: ledger is required")
	}
	if cfg.AuthEnabled && (cfg.Users == nil || cfg.Sessions == nil) {
		return nil, fmt.Errorf("new server: auth enabled without user manager or sessions")
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = ledger.SystemClock{}
	}

	board, err := template.ParseFS(templateFS, "templates/board.html")
	if err != nil {
		return nil, fmt.Errorf("new server: parse board template: %w", err)
	}

	s := &Server{
		mux:      http.NewServeMux(),
		log:      log,
		ledger:   cfg.Ledger,
		users:    cfg.Users,
		sessions: cfg.Sessions,
		gated:    cfg.AuthEnabled,
		board:    board,
		clock:    clock,
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleBoard)

	s.mux.HandleFunc("POST /api/login", s.handleLogin)
	s.mux.HandleFunc("POST /api/logout", s.handleLogout)

	s.mux.HandleFunc("GET /api/carts", s.handleListCarts)
	s.mux.HandleFunc("GET /api/carts/{cart}", s.handleGetCart)
	s.mux.Handle("POST /api/carts/{cart}", s.requireUser(http.HandlerFunc(s.handleUpdateCart)))
	s.mux.HandleFunc("GET /api/carts/{cart}/history", s.handleHistory)
	s.mux.HandleFunc("GET /api/counts", s.handleCounts)
	s.mux.HandleFunc("GET /api/report", s.handleReport)

	s.mux.Handle("GET /api/users", s.requireAdmin(http.HandlerFunc(s.handleListUsers)))
	s.mux.Handle("POST /api/users", s.requireAdmin(http.HandlerFunc(s.handleAddUser)))
	s.mux.Handle("DELETE /api/users/{name}", s.requireAdmin(http.HandlerFunc(s.handleRemoveUser)))
}

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.withSession(s.mux))
}
