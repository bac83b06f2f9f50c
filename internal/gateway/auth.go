package gateway

import (
	"net/http"
	"strings"

	"medibook/pkg/config"
	apperrors "medibook/pkg/errors"
	pkghttp "medibook/pkg/http"
	"medibook/pkg/token"
)

// RequireAuth rejects requests without a valid bearer token before
// they reach a backend. The Authorization header is forwarded as-is so
// backends can resolve the caller themselves.
func RequireAuth(issuer *token.Issuer, cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if _, err := issuer.Verify(tokenStr); err != nil {
				cfg.Log.Warn("Rejected unauthenticated request",
					"path", r.URL.Path,
					"error", err,
				)
				_ = pkghttp.WriteError(w, apperrors.Unauthorized("Invalid or missing token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if after, found := strings.CutPrefix(auth, "Bearer "); found {
		return after
	}
	return ""
}
