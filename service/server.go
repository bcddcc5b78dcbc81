package service

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"library/cache"
	"library/config"
	"library/models"
)

// Server holds everything the HTTP handlers need. Only the library is
// mandatory; the remaining collaborators fall back to in-process defaults.
type Server struct {
	Library models.Library
	Index   models.BookIndex
	Cache   cache.RequestCacher
	Logger  *slog.Logger
	Metrics *Metrics
}

type Option func(*Server)

func WithRequestCache(requestCache cache.RequestCacher) Option {
	return func(server *Server) {
		if requestCache != nil {
			server.Cache = requestCache
		}
	}
}

// WithBookIndex enables mirroring of created and updated books.
func WithBookIndex(index models.BookIndex) Option {
	return func(server *Server) {
		server.Index = index
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(server *Server) {
		if logger != nil {
			server.Logger = logger
		}
	}
}

func WithRegistry(registry *prometheus.Registry) Option {
	return func(server *Server) {
		if registry != nil {
			server.Metrics = NewMetrics(registry, server.Library)
		}
	}
}

func NewServer(library models.Library, opts ...Option) *Server {
	server := &Server{
		Library: library,
		Cache:   cache.CreateMemoryCache(config.MAX_NUMBER_CACHED),
		Logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Metrics == nil {
		server.Metrics = NewMetrics(prometheus.NewRegistry(), library)
	}
	return server
}
