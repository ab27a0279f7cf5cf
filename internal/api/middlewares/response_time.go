package middlewares

import (
	"net/http"
	"time"

	"github.com/5w1tchy/bookshelf-api/internal/logger"
)

type rtWriter struct {
	http.ResponseWriter
	start   time.Time
	stamped bool
}

func (w *rtWriter) stamp() {
	if !w.stamped {
		w.Header().Set("X-Response-Time", time.Since(w.start).String())
		w.stamped = true
	}
}

func (w *rtWriter) WriteHeader(code int) {
	w.stamp()
	w.ResponseWriter.WriteHeader(code)
}

func (w *rtWriter) Write(b []byte) (int, error) {
	w.stamp()
	return w.ResponseWriter.Write(b)
}

// ResponseTime sets X-Response-Time to the time spent before the first byte
// and warns about requests slower than slow. A zero slow disables the warning.
func ResponseTime(slow time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &rtWriter{ResponseWriter: w, start: time.Now()}
			next.ServeHTTP(rw, r)
			rw.stamp()

			if elapsed := time.Since(rw.start); slow > 0 && elapsed > slow {
				logger.FromContext(r.Context()).
					WithField("duration", elapsed.String()).
					Warnf("slow request %s %s", r.Method, r.URL.Path)
			}
		})
	}
}
