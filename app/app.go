package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"bitbucket.org/kleinnic74/geodist/config"
	"bitbucket.org/kleinnic74/geodist/consts"
	"bitbucket.org/kleinnic74/geodist/geocoding"
	"bitbucket.org/kleinnic74/geodist/geocoding/openstreetmap"
	"bitbucket.org/kleinnic74/geodist/logging"
	"bitbucket.org/kleinnic74/geodist/rest"
	"github.com/gorilla/mux"
	"github.com/kleinnic74/fflags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

var metricsAPI = fflags.Define("api.metrics")

type App struct {
	addr   string
	router *mux.Router
}

func NewApp(ctx context.Context, c config.Config) (a *App, err error) {
	logger, _ := logging.SubFrom(ctx, "app")

	a = &App{
		addr:   c.Addr(),
		router: rest.NewRouter(),
	}

	resolver := geocoding.NewInstrumented(openstreetmap.NewResolver(c.GeocoderTimeout,
		openstreetmap.WithBaseURL(c.GeocoderURL),
		openstreetmap.WithUserAgent(c.UserAgent),
		openstreetmap.WithLanguages(c.Languages...)))
	logger.Info("Geocoder",
		zap.String("url", c.GeocoderURL),
		zap.Duration("timeout", c.GeocoderTimeout),
		zap.Strings("languages", c.Languages))

	// REST Handlers

	handlers := []rest.RouteRegistrar{
		rest.NewGeoHandler(resolver),
		rest.NewDistanceHandler(),
	}

	if err = fflags.IfEnabled(metricsAPI, func() error {
		handlers = append(handlers, rest.NewMetricsHandler(prometheus.DefaultGatherer))
		return nil
	}); err != nil {
		return nil, fmt.Errorf("Failed to initialize metrics: %w", err)
	}

	if consts.IsDevMode() {
		handlers = append(handlers, rest.NewLogsHandler())
	}

	for _, h := range handlers {
		h.InitRoutes(a.router)
	}
	return a, nil
}

// Handler returns the API with all middlewares applied.
func (a *App) Handler() http.Handler {
	return rest.WithMiddleWares(a.router, "rest")
}

// Run serves the API until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	logger, ctx := logging.SubFrom(ctx, "app")

	server := http.Server{
		Addr:              a.addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(l net.Listener) context.Context { return ctx },
	}

	failed := make(chan error, 1)
	go func() {
		logger, _ := logging.SubFrom(ctx, "http")
		logger.Info("Starting HTTP server...", zap.String("bindAddr", a.addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			failed <- err
		}
		close(failed)
	}()

	select {
	case err := <-failed:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Stopping...")
	ctxShutdown, cancelServerShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelServerShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Failed to shutdown HTTP server", zap.Error(err))
		return err
	}
	<-failed

	logger.Info("Terminated gracefully")
	return nil
}
