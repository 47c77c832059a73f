package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"ordercycles/cmd"
	httpadapter "ordercycles/internal/adapters/in/http"
	postgres_adapter "ordercycles/internal/adapters/out/postgres"
	"ordercycles/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	appLogger := logger.New(configs.LogLevel, configs.Environment, os.Stdout)

	gormDB, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		appLogger.WithError(err).Fatal("failed to connect database")
	}
	if err = postgres_adapter.Migrate(gormDB); err != nil {
		appLogger.WithError(err).Fatal("failed to migrate database")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, appLogger)

	jobManager, err := app.CreateJobManager()
	if err != nil {
		appLogger.WithError(err).Fatal("failed to create jobs")
	}
	if err = jobManager.StartAll(); err != nil {
		appLogger.WithError(err).Fatal("failed to start jobs")
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = startWebServer(ctx, &app, configs, appLogger); err != nil {
		appLogger.WithError(err).Error("web server stopped")
	}
}

func startWebServer(ctx context.Context, app *cmd.CompositionRoot, configs cmd.Config, appLogger *logrus.Logger) error {
	server, err := app.CreateHTTPServer()
	if err != nil {
		return err
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(echoLogLevel(appLogger.GetLevel()))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(httpadapter.RequestLogger(appLogger))
	server.Register(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	appLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), configs.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func echoLogLevel(level logrus.Level) log.Lvl {
	switch level {
	case logrus.DebugLevel, logrus.TraceLevel:
		return log.DEBUG
	case logrus.InfoLevel:
		return log.INFO
	case logrus.WarnLevel:
		return log.WARN
	}
	return log.ERROR
}
