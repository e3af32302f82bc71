// Package server assembles the HTTP router and the per-route
// authorization table.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/teamfolio/teamfolio-go/internal/handler"
	"github.com/teamfolio/teamfolio-go/internal/middleware"
)

// Access is the authentication a route requires.
type Access int

const (
	// Public routes run without a token.
	Public Access = iota
	// RateLimited routes are public but throttled per client IP.
	RateLimited
	// Gated routes run behind JWTAuth and see the caller's user ID.
	Gated
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case RateLimited:
		return "rate-limited"
	case Gated:
		return "gated"
	}
	return "unknown"
}

// Route is one entry of the routing table.
type Route struct {
	Method  string
	Pattern string
	Access  Access
	Handler http.HandlerFunc
}

// Handlers bundles the HTTP handlers the router dispatches to.
type Handlers struct {
	Auth      *handler.AuthHandler
	Profile   *handler.ProfileHandler
	Documents *handler.DocumentHandler
}

// Options configures the router's middleware.
type Options struct {
	JWTSecret      string
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// Routes is the authorization table: every route and the access it requires.
func Routes(h Handlers) []Route {
	return []Route{
		{http.MethodPost, "/api/auth/register", RateLimited, h.Auth.HandleRegister},
		{http.MethodPost, "/api/auth/login", RateLimited, h.Auth.HandleLogin},
		{http.MethodPost, "/api/auth/logout", Public, h.Auth.HandleLogout},
		{http.MethodGet, "/api/auth/user", Gated, h.Profile.HandleMe},
		{http.MethodGet, "/api/auth/user/{id}", Public, h.Profile.HandleGetByID},
		{http.MethodGet, "/api/auth/users", Public, h.Profile.HandleList},
		{http.MethodPost, "/api/auth/useredit", Gated, h.Profile.HandleEdit},
		{http.MethodPost, "/api/auth/doc", Gated, h.Documents.HandleCreate},
		{http.MethodGet, "/api/auth/documents", Gated, h.Documents.HandleList},
	}
}

// NewRouter builds the chi router for h.
func NewRouter(h Handlers, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	limit := middleware.RateLimit(opts.RateLimitRPS, opts.RateLimitBurst)
	groups := map[Access]func(http.Handler) http.Handler{
		// RealIP first so clients behind a proxy get their own bucket.
		RateLimited: func(next http.Handler) http.Handler { return chimw.RealIP(limit(next)) },
		Gated:       middleware.JWTAuth(opts.JWTSecret),
	}

	for _, rt := range Routes(h) {
		var next http.Handler = rt.Handler
		if mw, ok := groups[rt.Access]; ok {
			next = mw(next)
		}
		r.Method(rt.Method, rt.Pattern, next)
	}

	return r
}
