// Package api serves the merged leaderboards, standings and valuation as JSON.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/pable/go-ff-stats/internal/model"
	"github.com/pable/go-ff-stats/internal/source"
)

// Backend fetches sheets for the handlers. *source.Client implements it.
type Backend interface {
	Fetch(ctx context.Context, splits []model.Split) source.Batch
	FetchStandings(ctx context.Context, src source.StandingsSource) (source.StageStandings, error)
}

// Server represents the JSON API server.
type Server struct {
	server  *http.Server
	handler *Handler
}

// NewServer wires the routes onto addr (e.g. ":8080").
func NewServer(addr string, backend Backend, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	handler := NewHandler(backend, log)
	return &Server{
		handler: handler,
		server: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(handler, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// NewRouter builds the route table.
func NewRouter(handler *Handler, log logrus.FieldLogger) *mux.Router {
	router := mux.NewRouter()

	router.Use(RecoveryMiddleware(log))
	router.Use(LoggingMiddleware(log))

	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()

	// Leaderboards
	api.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods("GET")
	api.HandleFunc("/players/{name}", handler.GetPlayer).Methods("GET")
	api.HandleFunc("/compare", handler.GetComparison).Methods("GET")

	// Standings
	api.HandleFunc("/standings/{season}", handler.GetStandings).Methods("GET")

	// Valuation
	api.HandleFunc("/valuation", handler.PostValuation).Methods("POST")

	return router
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start serves until Shutdown. It returns http.ErrServerClosed after a
// graceful shutdown.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
