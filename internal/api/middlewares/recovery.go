package middlewares

import (
	"net/http"
	"runtime/debug"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				logger.FromContext(r.Context()).
					WithField("stack", string(debug.Stack())).
					Errorf("panic serving %s %s: %v", r.Method, r.URL.Path, err)

				// Don't expose internal errors to client
				apperr.WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
