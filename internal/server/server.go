// Package server exposes position evaluation over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"option-tool/internal/config"
	"option-tool/internal/payoff"
)

// Server serves the payoff API.
type Server struct {
	cfg       *config.Config
	logger    zerolog.Logger
	evaluator *payoff.Evaluator
	engine    *gin.Engine
}

// New creates a Server with all routes registered.
func New(cfg *config.Config, logger zerolog.Logger) *Server {
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		logger:    logger,
		evaluator: payoff.NewEvaluator(cfg.Defaults.SweepPoints, logger),
		engine:    gin.New(),
	}
	s.engine.Use(gin.Recovery())
	s.engine.Use(requestIDMiddleware(logger))
	s.engine.Use(accessLogMiddleware())
	s.register()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) register() {
	s.engine.GET("/healthz", s.health)

	v1 := s.engine.Group("/api/v1")
	if s.cfg.Server.RateLimit > 0 {
		v1.Use(rateLimitMiddleware(NewRateLimiter(s.cfg.Server.RateLimit, s.cfg.Server.Burst)))
	}
	v1.POST("/payoff", s.evaluate)
	v1.POST("/compare", s.compare)
	v1.GET("/strategies", s.listStrategies)
	v1.POST("/strategies/:name", s.buildStrategy)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown requested")
	case err, ok := <-errCh:
		if ok {
			s.logger.Error().Err(err).Msg("Server error")
			return err
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
