package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-lists/internal/config"
	"github.com/adanyl0v/go-todo-lists/internal/delivery/http/v1"
	"github.com/adanyl0v/go-todo-lists/internal/metrics"
	"github.com/adanyl0v/go-todo-lists/internal/services"
)

// newRouter builds the engine. m is nil when metrics are disabled.
//
// The metrics middleware wraps gin.Recovery so a panicking handler is
// still counted, with the 500 written by the recovery.
func (a *Application) newRouter(m *metrics.Metrics) *gin.Engine {
	if a.config.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	v1Handler := v1.New(
		a.logger,
		services.NewListService(a.logger, a.pgPool),
		services.NewItemService(a.logger, a.pgPool),
	)

	router := gin.New()
	router.Use(v1Handler.HandleRequestLogger)
	if m != nil {
		router.Use(m.Middleware())
	}
	router.Use(gin.Recovery())
	if m != nil {
		router.GET(metrics.Path, gin.WrapH(m.Handler()))
	}

	v1.RegisterRoutes(router, v1Handler)
	return router
}

func (a *Application) newMetrics() *metrics.Metrics {
	if !a.config.Metrics.Enabled {
		return nil
	}

	m := metrics.New()
	m.RegisterPool(a.pgPool)
	return m
}

// MustListenAndServeHTTP serves until SIGINT or SIGTERM arrives, then
// drains in-flight requests within the configured shutdown timeout.
func (a *Application) MustListenAndServeHTTP() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := a.serveHTTP(ctx, a.newRouter(a.newMetrics()))
	if err != nil {
		panic(err)
	}
	a.logger.Info().Msg("http server stopped")
}

func (a *Application) serveHTTP(ctx context.Context, handler http.Handler) error {
	httpCfg := a.config.HTTP

	server := &http.Server{
		Addr:              net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info().
			Str("addr", server.Addr).
			Msg("serving http")
		serveErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		a.logger.Error().
			Err(err).
			Msg("http server exited")
		return err
	case <-ctx.Done():
	}

	a.logger.Info().
		Dur("timeout", httpCfg.ShutdownTimeout).
		Msg("draining http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(shutdownCtx)
	if err != nil {
		a.logger.Error().
			Err(err).
			Msg("http server did not drain in time")
		return err
	}

	err = <-serveErr
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
