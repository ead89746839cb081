package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/edo/internal/engine/config"
	"github.com/go-arcade/edo/internal/engine/router"
	"github.com/go-arcade/edo/internal/engine/service"
	"github.com/go-arcade/edo/pkg/log"
	"github.com/go-arcade/edo/pkg/metrics"
	"github.com/go-arcade/edo/pkg/pprof"
	"github.com/go-arcade/edo/pkg/shutdown"
	"github.com/gofiber/fiber/v2"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/9/8 15:52
 * @file: bootstrap.go
 * @description: assemble and run the api server
 */

type App struct {
	HttpApp  *fiber.App
	Logger   *log.Logger
	Services *service.Services
	Metrics  *metrics.Server
	Pprof    *pprof.Server
	Tracer   *sdktrace.TracerProvider
	Shutdown *shutdown.Manager
	AppConf  *config.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *log.Logger,
	services *service.Services,
	metricsSrv *metrics.Server,
	pprofSrv *pprof.Server,
	tracer *sdktrace.TracerProvider,
	appConf *config.AppConfig,
) *App {
	return &App{
		HttpApp:  rt.Router(),
		Logger:   logger,
		Services: services,
		Metrics:  metricsSrv,
		Pprof:    pprofSrv,
		Tracer:   tracer,
		Shutdown: rt.Shutdown,
		AppConf:  appConf,
	}
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("init app: %w", err)
	}
	return app, cleanup, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger.Log
	appConf := app.AppConf

	if err := app.Services.Access.SeedRoles(context.Background()); err != nil {
		logger.Warnw("seed roles failed", "error", err)
	}
	if err := app.Metrics.Start(); err != nil {
		logger.Errorw("metrics server failed to start", "error", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	addr := fmt.Sprintf("%s:%d", appConf.Http.Host, appConf.Http.Port)
	go func() {
		logger.Infow("HTTP listener started", "address", addr)
		var err error
		if appConf.Http.TLS.CertFile != "" && appConf.Http.TLS.KeyFile != "" {
			err = app.HttpApp.ListenTLS(addr, appConf.Http.TLS.CertFile, appConf.Http.TLS.KeyFile)
		} else {
			err = app.HttpApp.Listen(addr)
		}
		if err != nil {
			logger.Errorw("HTTP listener failed", "address", addr, "error", err)
			app.Shutdown.Shutdown()
		}
	}()

	select {
	case sig := <-quit:
		logger.Infof("Received signal: %v, shutting down gracefully...", sig)
		app.Shutdown.Shutdown()
	case <-app.Shutdown.Wait():
		logger.Info("shutdown requested")
	}

	timeout := time.Duration(appConf.Http.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	// database, cache, tracer, metrics and pprof listeners
	cleanup()
	_ = log.Sync()

	logger.Info("Server shutdown complete")
}
