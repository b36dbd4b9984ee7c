package app

import (
	"context"
	"time"

	"imagehub/internal/config"
	"imagehub/internal/infra/cache"
	"imagehub/internal/repository/postgres"
	"imagehub/internal/transport/echo"

	"github.com/rs/zerolog"
)

const (
	cacheCleanupInterval = 5 * time.Minute
	serverAddrPrefix     = ":"
)

// Service is the assembled application: configuration, database pool,
// presigned-URL cache, and the HTTP server.
type Service struct {
	config   *config.Config
	logger   zerolog.Logger
	db       *postgres.DB
	urlCache *cache.URLCache
	server   *echo.Server

	stopCleanup chan struct{}
}

// Start runs the background cache sweep and starts the HTTP server. It
// blocks until the server stops.
func (s *Service) Start() error {
	s.stopCleanup = make(chan struct{})
	go s.runCacheCleanup()

	s.logger.Info().Str("port", s.config.Server.Port).Msg("starting imagehub")
	return s.server.Start(serverAddrPrefix + s.config.Server.Port)
}

// runCacheCleanup periodically drops expired presigned URLs so the cache
// does not grow with every object ever served.
func (s *Service) runCacheCleanup() {
	ticker := time.NewTicker(cacheCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.urlCache.Clear()
		case <-s.stopCleanup:
			return
		}
	}
}

// Shutdown drains the HTTP server, stops background work, and closes the
// database pool.
func (s *Service) Shutdown(ctx context.Context) error {
	if s.stopCleanup != nil {
		close(s.stopCleanup)
	}

	err := s.server.Shutdown(ctx)
	s.db.Close()
	return err
}
