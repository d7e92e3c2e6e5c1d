package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"flightlog/internal/auth"
	"flightlog/internal/core"
	"flightlog/internal/csvio"
	"flightlog/internal/logbook"
	"flightlog/internal/store"
)

const maxBodyBytes = 4 << 20 // CSV imports are the largest payloads

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	// Confirm is optional; when present it must match Password.
	Confirm string `json:"confirm,omitempty"`
}

// entryView is a flight entry as returned by the API: the raw fields plus the
// human-readable date.
type entryView struct {
	Index int `json:"index"`
	core.FlightEntry
	DateFormatted string `json:"date_formatted"`
}

func toEntryView(i int, e core.FlightEntry) entryView {
	return entryView{Index: i, FlightEntry: e, DateFormatted: core.FormatDate(e.Date)}
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Confirm != "" && req.Confirm != req.Password {
		writeError(w, http.StatusUnprocessableEntity, "passwords do not match")
		return
	}

	err := s.auth.Register(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrEmptyCredentials):
		writeError(w, http.StatusUnprocessableEntity, "username and password are required")
	case errors.Is(err, store.ErrUsernameTaken):
		writeError(w, http.StatusConflict, "username already taken")
	case err != nil:
		slog.ErrorContext(r.Context(), "Signup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not create account")
	default:
		writeJSON(w, http.StatusCreated, map[string]string{"username": req.Username})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	token, err := s.auth.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrEmptyCredentials):
		writeError(w, http.StatusUnauthorized, "invalid username or password")
	case err != nil:
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not log in")
	default:
		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	s.auth.Logout(bearerToken(r))
	w.WriteHeader(http.StatusNoContent)
}

// handleEntries serves the whole sequence: GET lists, POST appends one entry,
// PUT replaces the entire sequence.
func (s *Server) handleEntries(w http.ResponseWriter, r *http.Request) {
	session := s.logbooks.Session(r.Context(), requestUser(r))

	switch r.Method {
	case http.MethodGet:
		entries := session.Entries()
		views := make([]entryView, len(entries))
		for i, e := range entries {
			views[i] = toEntryView(i, e)
		}
		writeJSON(w, http.StatusOK, views)

	case http.MethodPost:
		var e core.FlightEntry
		if !decodeJSON(w, r, &e) {
			return
		}
		if !validEntryDate(e.Date) {
			writeError(w, http.StatusUnprocessableEntity, "date must be six digits (YYMMDD) or empty")
			return
		}
		session.Append(e)
		entries := session.Entries()
		writeJSON(w, http.StatusCreated, toEntryView(len(entries)-1, entries[len(entries)-1]))

	case http.MethodPut:
		var entries []core.FlightEntry
		if !decodeJSON(w, r, &entries) {
			return
		}
		for i, e := range entries {
			if !validEntryDate(e.Date) {
				writeError(w, http.StatusUnprocessableEntity,
					fmt.Sprintf("entry %d: date must be six digits (YYMMDD) or empty", i))
				return
			}
		}
		session.ReplaceAll(entries)
		writeJSON(w, http.StatusOK, map[string]int{"count": len(entries)})

	default:
		methodNotAllowed(w, "GET, POST, PUT")
	}
}

// handleEntryByIndex serves /entries/{index}: PUT replaces, DELETE removes.
func (s *Server) handleEntryByIndex(w http.ResponseWriter, r *http.Request) {
	idx, ok := entryIndex(r.URL.Path)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid entry index")
		return
	}
	session := s.logbooks.Session(r.Context(), requestUser(r))

	switch r.Method {
	case http.MethodPut:
		var e core.FlightEntry
		if !decodeJSON(w, r, &e) {
			return
		}
		if !validEntryDate(e.Date) {
			writeError(w, http.StatusUnprocessableEntity, "date must be six digits (YYMMDD) or empty")
			return
		}
		if err := session.ReplaceAt(idx, e); errors.Is(err, logbook.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, "no entry at that index")
			return
		}
		writeJSON(w, http.StatusOK, toEntryView(idx, e))

	case http.MethodDelete:
		if err := session.RemoveAt(idx); errors.Is(err, logbook.ErrIndexOutOfRange) {
			writeError(w, http.StatusNotFound, "no entry at that index")
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	session := s.logbooks.Session(r.Context(), requestUser(r))
	writeJSON(w, http.StatusOK, session.Totals())
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	session := s.logbooks.Session(r.Context(), requestUser(r))
	writeJSON(w, http.StatusOK, session.Currency())
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	session := s.logbooks.Session(r.Context(), requestUser(r))

	out, err := csvio.Export(session.Entries())
	if err != nil {
		slog.ErrorContext(r.Context(), "CSV export failed", "user", requestUser(r), "error", err)
		writeError(w, http.StatusInternalServerError, "could not export logbook")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="logbook.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

// handleImport replaces the working set with the uploaded CSV document.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read request body")
		return
	}

	entries, err := csvio.Import(body)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "could not parse CSV: "+err.Error())
		return
	}

	session := s.logbooks.Session(r.Context(), requestUser(r))
	session.ReplaceAll(entries)
	if err := session.Flush(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Import save failed", "user", requestUser(r), "error", err)
		writeError(w, http.StatusInternalServerError, "imported entries could not be saved")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"imported": len(entries)})
}

// validEntryDate accepts a six-digit date or the empty string (date not yet
// filled in).
func validEntryDate(raw string) bool {
	return raw == "" || core.ValidDate(raw)
}

// entryIndex extracts the index from /entries/{index}.
func entryIndex(path string) (int, bool) {
	rest := strings.TrimPrefix(path, "/entries/")
	if rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 {
		return 0, false
	}
	return idx, true
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}
