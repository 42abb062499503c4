package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ojavier0506-ui/golf-carts/internal/auth"
	"github.com/ojavier0506-ui/golf-carts/internal/fleet"
	"github.com/ojavier0506-ui/golf-carts/internal/report"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]errorResponse{"error": {Code: code, Message: message}})
}

// writeLedgerError maps the ledger taxonomy onto HTTP statuses: identity
// failures are the caller's fault, persistence failures are ours.
func (s *Server) writeLedgerError(w http.ResponseWriter, err error) {
	var fe *fleet.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fleet.ErrCodeUnknownCart:
			writeError(w, http.StatusNotFound, string(fe.Code), fe.Message)
			return
		default:
			s.log.Error("update failed", "code", string(fe.Code), "error", err)
			writeError(w, http.StatusInternalServerError, string(fe.Code), fe.Message)
			return
		}
	}
	s.log.Error("unexpected error", "error", err)
	writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	snapshot := s.ledger.GetAll()
	counts := s.ledger.CountsByStatus()

	type row struct {
		Name    string
		Status  string
		Comment string
	}
	type countRow struct {
		Status string
		Count  int
	}
	var data struct {
		Rows     []row
		Counts   []countRow
		Statuses []string
		LoggedIn bool
		Gated    bool
	}
	for _, name := range s.ledger.Registry().Names() {
		rec := snapshot[name]
		data.Rows = append(data.Rows, row{Name: name, Status: rec.Status, Comment: rec.Comment})
	}
	for _, st := range s.ledger.Statuses().Values() {
		data.Counts = append(data.Counts, countRow{Status: st, Count: counts[st]})
	}
	data.Statuses = s.ledger.Statuses().Values()
	_, data.LoggedIn = s.session(r)
	data.Gated = s.gated

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.board.Execute(w, data); err != nil {
		s.log.Error("render board", "error", err)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !s.gated {
		writeError(w, http.StatusNotFound, "AUTH_DISABLED", "login gate is disabled")
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed login body")
		return
	}

	role, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid username or password")
			return
		}
		s.log.Error("authenticate", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}

	token := s.sessions.Create(req.Username, role)
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"username": req.Username, "role": string(role)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(SessionCookie); err == nil && s.sessions != nil {
		s.sessions.Delete(c.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCarts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"carts": s.ledger.GetAll()})
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	cart, err := s.ledger.GetOne(r.PathValue("cart"))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cart)
}

func (s *Server) handleUpdateCart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status  string `json:"status"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed update body")
		return
	}

	res, err := s.ledger.Update(r.Context(), r.PathValue("cart"), req.Status, req.Comment, s.actor(r))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  res.Status,
		"comment": res.Comment,
		"changed": res.Changed,
		"counts":  res.Counts,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.GetHistory(r.PathValue("cart"), r.URL.Query().Get("date"))
	if err != nil {
		s.writeLedgerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": entries})
}

func (s *Server) handleCounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"counts": s.ledger.CountsByStatus()})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="fleet-status.pdf"`)
	if err := report.Render(w, report.Build(s.ledger, s.clock.Now())); err != nil {
		s.log.Error("render report", "error", err)
	}
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.users.List(r.Context())
	if err != nil {
		s.log.Error("list users", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": accounts})
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string    `json:"username"`
		Password string    `json:"password"`
		Role     auth.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed user body")
		return
	}

	if err := s.users.Add(r.Context(), req.Username, req.Password, req.Role); err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			writeError(w, http.StatusConflict, "USER_EXISTS", "user already exists")
			return
		}
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleRemoveUser(w http.ResponseWriter, r *http.Request) {
	err := s.users.Remove(r.Context(), r.PathValue("name"))
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, auth.ErrUnknownUser):
		writeError(w, http.StatusNotFound, "UNKNOWN_USER", "unknown user")
	case errors.Is(err, auth.ErrLastAdmin):
		writeError(w, http.StatusConflict, "LAST_ADMIN", "cannot remove the last admin")
	default:
		s.log.Error("remove user", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}
