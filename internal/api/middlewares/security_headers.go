package middlewares

import "net/http"

// SecurityHeaders sets the hardening headers. strict adds the cross-origin
// isolation headers.
func SecurityHeaders(strict bool) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-DNS-Prefetch-Control", "off")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "no-referrer")
			w.Header().Set("Cache-Control", "no-store")

			// HSTS should only be effective over HTTPS (r.TLS != nil)
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
			}

			// JSON only; nothing to load
			w.Header().Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

			if strict {
				w.Header().Set("Cross-Origin-Opener-Policy", "same-origin")
				w.Header().Set("Cross-Origin-Embedder-Policy", "require-corp")
				w.Header().Set("Cross-Origin-Resource-Policy", "same-origin")
			}

			next.ServeHTTP(w, r)
		})
	}
}
