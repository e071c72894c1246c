package middleware

import (
	"context"
	"net/http"
	"strings"

	"venuebook/pkg/logger"
	"venuebook/pkg/model"
)

const PrincipalKey contextKey = "principal"

// TokenVerifier checks a bearer token and returns the session principal.
type TokenVerifier interface {
	Verify(token string) (model.Principal, error)
}

// Authenticate parses an optional Authorization bearer token and stores the
// verified principal in the request context. Requests without a token pass
// through anonymously; services decide which operations require identity.
// A token that is present but invalid is rejected outright.
func Authenticate(verifier TokenVerifier, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				requestID := ""
				if rid := r.Context().Value(RequestIDKey); rid != nil {
					requestID = rid.(string)
				}
				log.Warn("Rejected invalid session token",
					"request_id", requestID,
					"path", r.URL.Path,
					"error", err,
				)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Invalid or expired session"}`))
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// PrincipalFrom returns the authenticated principal, if any.
func PrincipalFrom(ctx context.Context) (model.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(model.Principal)
	return p, ok
}
