package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	appMiddleware "github.com/FACorreiaa/go-gas-station-finder/app/middleware"
	_ "github.com/FACorreiaa/go-gas-station-finder/docs"
	"github.com/FACorreiaa/go-gas-station-finder/internal/api/search"
)

// Config contains dependencies needed for the router setup
type Config struct {
	SearchHandler  *search.HandlerImpl
	MetricsHandler http.Handler
	AllowedOrigins []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, requestID, recoverer) is applied by the caller
// before mounting this router.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", appMiddleware.SearchIDHeader},
		ExposedHeaders: []string{appMiddleware.SearchIDHeader, "Content-Disposition"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(appMiddleware.SearchID)

		r.Post("/search", cfg.SearchHandler.Search)
		r.Get("/search/export", cfg.SearchHandler.Export)
	})

	return r
}
