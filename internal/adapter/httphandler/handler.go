package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/marketplace/internal/core/domain"
)

const (
	sessionHeader = "X-Session-ID"
	userHeader    = "X-User-ID"

	// persistedHeader is "false" when the change was applied
	// but the session storage rejected it.
	persistedHeader = "X-Persisted"
)

var errStatuses = []struct {
	err  error
	code int
}{
	{domain.ErrInvalidStatus, http.StatusBadRequest},
	{domain.ErrInvalidQuantity, http.StatusBadRequest},
	{domain.ErrInvalidProduct, http.StatusBadRequest},
	{domain.ErrInvalidBid, http.StatusBadRequest},
	{domain.ErrOrderNotFound, http.StatusNotFound},
	{domain.ErrAuctionNotFound, http.StatusNotFound},
	{domain.ErrMaxQuantity, http.StatusConflict},
	{domain.ErrCompareLimit, http.StatusConflict},
	{domain.ErrAlreadyInCompare, http.StatusConflict},
	{domain.ErrBidTooLow, http.StatusConflict},
	{domain.ErrAuctionEnded, http.StatusConflict},
}

// writeError maps domain errors to client errors, anything else is 500.
func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	for _, e := range errStatuses {
		if errors.Is(err, e.err) {
			http.Error(w, e.err.Error(), e.code)
			log.Warn("rejected", "err", err)
			return
		}
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
	log.Error("failed to handle request", "err", err)
}

// storeResult reports whether the handler should render the store state.
// Unpersisted mutations still succeed for the client.
func storeResult(w http.ResponseWriter, log *slog.Logger, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, domain.ErrNotPersisted) {
		w.Header().Set(persistedHeader, "false")
		log.Warn("session state is not persisted", "err", err)
		return true
	}
	writeError(w, log, err)
	return false
}

func decodeJSON(w http.ResponseWriter, r *http.Request, log *slog.Logger, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid JSON data", http.StatusBadRequest)
		log.Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func requireHeader(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, name string,
) (string, bool) {
	v := r.Header.Get(name)
	if v == "" {
		http.Error(w, "missing "+name+" header", http.StatusBadRequest)
		log.Warn("missing header", "header", name)
		return "", false
	}
	return v, true
}
