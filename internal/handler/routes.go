package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/msomdec/items-api/internal/domain"
	"github.com/msomdec/items-api/internal/service"
)

// NewRouter builds the API router. authLimiter may be nil to leave signup
// and login unlimited. trustProxy takes the client address from
// X-Forwarded-For / X-Real-IP; enable it only behind a proxy that sets them.
func NewRouter(
	auth *service.AuthService,
	items *service.ItemService,
	db domain.Database,
	origins *OriginPolicy,
	authLimiter *service.TokenBucket,
	trustProxy bool,
) http.Handler {
	users := NewUserHandler(auth)
	itemHandler := NewItemHandler(items)
	health := NewHealthHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if trustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(RequestLogger)
	r.Use(Recover)
	r.Use(SecurityHeaders)
	r.Use(OriginGate(origins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/healthz", health.HandleHealthz)

	r.Route("/users", func(r chi.Router) {
		r.Use(RateLimit(authLimiter))
		r.Post("/", users.HandleSignup)
		r.Post("/login", users.HandleLogin)
	})

	r.Route("/items", func(r chi.Router) {
		r.Get("/", itemHandler.HandleList)
		r.Post("/", itemHandler.HandleCreate)
		r.Put("/{id}", itemHandler.HandleUpdate)
		r.Delete("/{id}", itemHandler.HandleDelete)
	})

	return r
}
