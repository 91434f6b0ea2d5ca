package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/catalogue"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-ireland-travel-planner/internal/api/tags"
)

// Config contains dependencies needed for the router setup
type Config struct {
	CatalogueHandler *catalogue.Handler
	ItineraryHandler *itinerary.Handler
	TagsHandler      *tags.Handler
	// AuthenticateMiddleware guards itinerary generation. Nil leaves it open.
	AuthenticateMiddleware func(http.Handler) http.Handler
	AllowedOrigins         []string
}

// SetupRouter builds the API router. Server-wide middleware (request id, logging,
// recoverer) is applied in main before this router is mounted.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:5173", "http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/tags", cfg.TagsHandler.GetTags)
		r.Get("/pois", cfg.CatalogueHandler.SearchPOIs)

		r.Group(func(r chi.Router) {
			if cfg.AuthenticateMiddleware != nil {
				r.Use(cfg.AuthenticateMiddleware)
			}
			r.Post("/itineraries", cfg.ItineraryHandler.CreateItinerary)
		})
	})

	return r
}
