package middlewares

import (
	"net/http"
	"regexp"

	"github.com/5w1tchy/bookshelf-api/internal/logger"
	"github.com/google/uuid"
)

var ridRe = regexp.MustCompile(`^[A-Za-z0-9_.\-]{1,64}$`)

// RequestID accepts a well-formed X-Request-ID or generates one, and stores a
// logger tagged with it in the request context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := r.Header.Get("X-Request-ID")
		if !ridRe.MatchString(rid) {
			rid = uuid.NewString()
		}
		ctx, _ := logger.WithRequestID(r.Context(), rid)
		r = r.WithContext(ctx)
		r.Header.Set("X-Request-ID", rid)
		w.Header().Set("X-Request-ID", rid)

		next.ServeHTTP(w, r)
	})
}
