package server

import (
	"fmt"
	"net/http"

	"github.com/dekarrin/shrdlite/server/api"
	"github.com/dekarrin/shrdlite/server/dao"
	"github.com/dekarrin/shrdlite/server/middle"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is a Shrdlite session server: an HTTP API over a persisted set of
// planning sessions.
type Server struct {
	Store  dao.Store
	router chi.Router
	cfg    Config
}

// New builds a Server from cfg, connecting to its persistence layer.
func New(cfg Config) (*Server, error) {
	cfg = cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	store, err := cfg.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	srv := &Server{Store: store, cfg: cfg}
	srv.router = srv.buildRouter()
	return srv, nil
}

func (srv *Server) buildRouter() chi.Router {
	a := api.API{
		Store:        srv.Store,
		SearchBudget: srv.cfg.SearchBudget,
		WorldDir:     srv.cfg.WorldDir,
		UnauthDelay:  srv.cfg.UnauthDelay(),
		Secret:       srv.cfg.TokenSecret,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middle.DontPanic())

	r.Route(api.PathPrefix, func(r chi.Router) {
		r.Get("/info", a.HTTPGetInfo())

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", a.HTTPCreateSession())

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", a.HTTPGetSession())
				r.Delete("/", a.HTTPDeleteSession())
				r.Post("/utterances", a.HTTPPostUtterance())
			})
		})
	})

	return r
}

// ServeHTTP implements http.Handler so a Server can be passed directly to
// http.ListenAndServe.
func (srv *Server) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	srv.router.ServeHTTP(w, req)
}

// Close releases the Server's persistence layer.
func (srv *Server) Close() error {
	return srv.Store.Close()
}
