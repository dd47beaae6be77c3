package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/rs/zerolog/hlog"
	"github.com/seanblong/transcriptsearch/internal/auth"
	"github.com/seanblong/transcriptsearch/internal/search"
)

const (
	msgQueryRequired = "Query is required"
	msgInternal      = "Internal Server Error"
)

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func searchHandler(svc Searcher, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		q := r.URL.Query().Get("query")
		page := ParsePage(r.URL.Query().Get("page"))
		if q == "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Message: msgQueryRequired})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		res, err := svc.Search(ctx, q, page)
		if err != nil {
			if errors.Is(err, search.ErrQueryRequired) {
				writeJSON(w, http.StatusBadRequest, errorBody{Message: msgQueryRequired})
				return
			}
			hlog.FromRequest(r).Error().Err(err).Str("query", q).Int("page", page).Msg("search failed")
			writeJSON(w, http.StatusInternalServerError, errorBody{Message: msgInternal, Error: err.Error()})
			return
		}

		writeJSON(w, http.StatusOK, res)
		hlog.FromRequest(r).Info().Str("path", r.URL.Path).Str("query", q).Int("page", page).Int("total", res.TotalResults).Dur("dur", time.Since(start)).Msg("served")
	}
}

func healthHandler(h HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h != nil {
			if err := h.Readable(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func authStatusHandler(g *auth.Gate) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"enabled": g.Enabled()})
	}
}

var leadingInt = regexp.MustCompile(`^\s*([+-]?\d+)`)

// ParsePage reads the leading integer of raw. Missing, unparsable and
// non-positive values mean page 1.
func ParsePage(raw string) int {
	m := leadingInt.FindStringSubmatch(raw)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
