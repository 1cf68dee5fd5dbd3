// Package health exposes the observability HTTP surface: a liveness
// endpoint and the Prometheus metrics scrape target.
package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// Server serves /healthz and /metrics.
type Server struct {
	echo    *echo.Echo
	addr    string
	logger  zerolog.Logger
	started time.Time
	version string
}

// New creates the server bound to addr.
func New(addr, version string, logger zerolog.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		addr:    addr,
		logger:  logger.With().Str("component", "health").Logger(),
		started: time.Now(),
		version: version,
	}

	e.GET("/healthz", s.handleHealthz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

// Start listens until Shutdown is called. Intended to run in its own
// goroutine.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.addr).Msg("health server listening")
	if err := s.echo.Start(s.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	})
}
