// Package health serves liveness and readiness probes over HTTP.
package health

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/bnema/zerowrap"
	"github.com/labstack/echo/v4"

	"github.com/bnema/seedy/internal/boundaries/in"
	"github.com/bnema/seedy/internal/domain"
)

// Handler exposes the HealthService.
type Handler struct {
	svc in.HealthService
}

// NewHandler creates a new health handler.
func NewHandler(svc in.HealthService) *Handler {
	return &Handler{svc: svc}
}

// Register mounts the probe routes.
func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.live)
	e.GET("/readyz", h.ready)
}

func (h *Handler) live(c echo.Context) error {
	return respond(c, h.svc.Live(c.Request().Context()))
}

func (h *Handler) ready(c echo.Context) error {
	return respond(c, h.svc.Ready(c.Request().Context()))
}

func respond(c echo.Context, report domain.HealthReport) error {
	code := http.StatusOK
	if report.Status != domain.HealthOK {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, report)
}

// Server is the probe HTTP listener.
type Server struct {
	echo *echo.Echo
	addr string
}

// NewServer creates a probe server on addr.
func NewServer(addr string, h *Handler) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	h.Register(e)
	return &Server{echo: e, addr: addr}
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx = zerowrap.CtxWithFields(ctx, map[string]any{
		zerowrap.FieldLayer:     "adapter",
		zerowrap.FieldAdapter:   "http",
		zerowrap.FieldComponent: "health",
	})
	log := zerowrap.FromCtx(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", s.addr).Msg("health server listening")
		errCh <- s.echo.Start(s.addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return log.WrapErr(err, "health server shutdown failed")
	}
	return nil
}
