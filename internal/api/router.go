package api

import (
	"net/http"
	"time"

	"github.com/didip/tollbooth/v7"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router assembles the HTTP surface: the JSON API under /api, the CORS-bypass
// proxy at /proxy (rate limited, it fetches arbitrary URLs on behalf of the
// caller) and the health check.
func (h *Handlers) Router(proxyRateLimit float64) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(90 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "https://localhost:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Trace-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", h.Health)

	limiter := tollbooth.NewLimiter(proxyRateLimit, nil)
	limiter.SetIPLookups([]string{"RemoteAddr", "X-Forwarded-For", "X-Real-IP"})
	r.Method(http.MethodGet, "/proxy", tollbooth.LimitFuncHandler(limiter, h.Proxy))

	r.Route("/api", func(r chi.Router) {
		r.Post("/resolve", h.Resolve)
		r.Post("/message", h.Message)
		r.Get("/image", h.Image)
	})

	return r
}
