package middlewares

import (
	"net/http"
	"strings"

	"github.com/5w1tchy/bookshelf-api/internal/api/apperr"
	"github.com/5w1tchy/bookshelf-api/internal/logger"
	jwtutil "github.com/5w1tchy/bookshelf-api/internal/security/jwt"
)

// RequireBearer rejects requests without a valid Bearer token.
func RequireBearer(v *jwtutil.Verifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := bearer(r.Header.Get("Authorization"))
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="books"`)
				apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", "missing bearer token")
				return
			}
			claims, err := v.Parse(tokenStr)
			if err != nil {
				logger.FromContext(r.Context()).WithError(err).Debug("rejected bearer token")
				w.Header().Set("WWW-Authenticate", `Bearer realm="books", error="invalid_token"`)
				apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", "invalid token")
				return
			}

			ctx := logger.WithField(r.Context(), "subject", claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearer(h string) (string, bool) {
	scheme, tok, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	tok = strings.TrimSpace(tok)
	return tok, tok != ""
}
