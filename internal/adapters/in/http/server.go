package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = 2 * time.Second

// pinger is satisfied by *sql.DB.
type pinger interface {
	PingContext(ctx context.Context) error
}

type metricsRecorder interface {
	ObserveHTTP(method, path string, status int, elapsed time.Duration)
	Handler() http.Handler
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}

// Server is the operational listener: liveness with a database ping and
// the Prometheus scrape endpoint.
type Server struct {
	db      pinger
	metrics metricsRecorder
}

func NewServer(db pinger, metrics metricsRecorder) *Server {
	return &Server{db: db, metrics: metrics}
}

// Register mounts the routes and the request metrics middleware on e.
func (s *Server) Register(e *echo.Echo) {
	e.Use(s.observe)
	e.GET("/health", s.Health)
	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthTimeout)
	defer cancel()

	if err := s.db.PingContext(pingCtx); err != nil {
		ctx.Logger().Warnf("health check: database ping failed: %v", err)
		return ctx.JSON(http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Database: "down"})
	}

	return ctx.JSON(http.StatusOK, HealthResponse{Status: "ok", Database: "up"})
}

func (s *Server) observe(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		start := time.Now()
		err := next(ctx)

		status := ctx.Response().Status
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
		}

		s.metrics.ObserveHTTP(ctx.Request().Method, ctx.Path(), status, time.Since(start))
		return err
	}
}
