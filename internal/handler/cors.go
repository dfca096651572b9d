package handler

import (
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/cors"
)

var localhostOrigin = regexp.MustCompile(`^http://localhost:\d+$`)

// OriginPolicy decides which browser origins may call the API: any
// localhost port over http, and the deployment host over https.
type OriginPolicy struct {
	deployment string
}

// NewOriginPolicy creates a policy for the given deployment host
// (for example "items.example.com").
func NewOriginPolicy(deploymentHost string) *OriginPolicy {
	return &OriginPolicy{deployment: "https://" + deploymentHost}
}

// Allowed reports whether origin may call the API. Requests without an
// Origin header are allowed.
func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" {
		return true
	}
	return localhostOrigin.MatchString(origin) || origin == p.deployment
}

// OriginGate rejects requests from disallowed origins with 403 before any
// route runs, then adds CORS response headers for allowed ones. Preflight
// requests from allowed origins are answered here.
func OriginGate(policy *OriginPolicy) func(http.Handler) http.Handler {
	corsHandler := cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return policy.Allowed(origin)
		},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	})

	return func(next http.Handler) http.Handler {
		withCORS := corsHandler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if !policy.Allowed(origin) {
				slog.Warn("origin rejected", "origin", origin, "path", r.URL.Path)
				writeError(w, http.StatusForbidden, "Not allowed by CORS")
				return
			}
			withCORS.ServeHTTP(w, r)
		})
	}
}
