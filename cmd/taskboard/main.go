package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"taskboard/internal/api"
	"taskboard/internal/clock"
	"taskboard/internal/config"
	"taskboard/internal/notify"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/server"
	"taskboard/internal/services"
)

func main() {
	cfg := config.NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		slog.Error("unable to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	addrFlag := flag.String("addr", cfg.Server.Addr, "HTTP listen address")
	dbDirFlag := flag.String("db-dir", cfg.Database.Dir, "Directory for the sqlite database file")
	flag.Parse()
	cfg.Server.Addr = *addrFlag
	cfg.Database.Dir = *dbDirFlag

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if err := os.MkdirAll(cfg.Database.Dir, os.FileMode(cfg.Database.DirPermissions)); err != nil {
		logger.Error("unable to create database directory", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo, err := sqlite.New(cfg.GetDatabasePath())
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer repo.Close()

	businessAPI := api.NewBusinessAPI(repo, clock.New(), notify.NewLogNotifier(logger), services.ContainerOptions{
		BcryptCost:   cfg.Auth.BcryptCost,
		ResetCodeTTL: cfg.Reset.CodeTTL,
	})
	srv := server.New(businessAPI, logger, cfg.Auth.SessionTTL)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
