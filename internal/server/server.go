// Package server exposes skillring over HTTP.
//
// The API serves the deck, stateless frame documents and SVG rings for any
// focus and viewport width, and hosts headless carousel sessions that clients
// drive with input events:
//
//	GET    /healthz
//	GET    /api/cards
//	GET    /api/frames?focus=&width=
//	GET    /api/frames.svg?focus=&width=
//	POST   /api/sessions
//	GET    /api/sessions/{id}
//	POST   /api/sessions/{id}/events
//	DELETE /api/sessions/{id}
//	GET    /metrics
//
// Frame documents and SVGs are cached by deck hash, focus and width.
package server

import (
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nekodev/skillring/pkg/cache"
	"github.com/nekodev/skillring/pkg/carousel/layout"
	"github.com/nekodev/skillring/pkg/content"
	"github.com/nekodev/skillring/pkg/observability"
	"github.com/nekodev/skillring/pkg/session"
)

// Config holds the server's collaborators.
type Config struct {
	// Deck is served by /api/cards and laid out by the frame endpoints.
	Deck *content.Deck
	// Engine computes stateless frames. Nil means layout.Default().
	Engine *layout.Engine
	// Cache stores rendered frame documents. Nil disables caching.
	Cache    cache.Cache
	CacheTTL time.Duration
	Keyer    cache.Keyer
	// Registry hosts sessions. Nil disables the session routes.
	Registry *session.Registry
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler
	Logger  *log.Logger
}

// Server is the HTTP handler for the API.
type Server struct {
	cfg      Config
	deckHash string
	frames   cache.Cache
	svgs     cache.Cache
	hooks    observability.HTTPHooks
	router   chi.Router
}

// New builds the router. The deck must be non-empty.
func New(cfg Config) *Server {
	if cfg.Engine == nil {
		cfg.Engine = layout.Default()
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewNullCache()
	}
	if cfg.Keyer == nil {
		cfg.Keyer = cache.NewDefaultKeyer()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}

	s := &Server{
		cfg:      cfg,
		deckHash: cfg.Deck.Hash(),
		frames:   cache.Instrument(cfg.Cache, "frames"),
		svgs:     cache.Instrument(cfg.Cache, "svg"),
		hooks:    observability.HTTP(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.handleHealth)
	if s.cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.cfg.Metrics)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/cards", s.handleCards)
		r.Get("/frames", s.handleFrames)
		r.Get("/frames.svg", s.handleFramesSVG)

		if s.cfg.Registry != nil {
			r.Post("/sessions", s.handleCreateSession)
			r.Route("/sessions/{id}", func(r chi.Router) {
				r.Get("/", s.handleGetSession)
				r.Delete("/", s.handleDeleteSession)
				r.Post("/events", s.handleEvent)
			})
		}
	})

	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
