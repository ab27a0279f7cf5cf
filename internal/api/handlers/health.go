package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/api/httpx"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
	"github.com/5w1tchy/bookshelf-api/internal/store/dbx"
)

const pingTimeout = 2 * time.Second

// Health reports 200 when the database answers a ping.
func Health(db dbx.Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			logger.FromContext(r.Context()).WithError(err).Warn("health check: database unreachable")
			apperr.WriteStatus(w, r, http.StatusServiceUnavailable, "Service Unavailable", "database unreachable")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// NotFound answers every unmatched route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	apperr.Respond(w, r, apperr.NotFound("Not Found"))
}
