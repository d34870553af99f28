package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/radio-guiones/app/api"
	"github.com/lysyi3m/radio-guiones/app/backup"
	"github.com/lysyi3m/radio-guiones/app/catalog"
	"github.com/lysyi3m/radio-guiones/app/cfg"
	"github.com/lysyi3m/radio-guiones/app/guiones"
	"github.com/lysyi3m/radio-guiones/app/newsdesk"
	"github.com/lysyi3m/radio-guiones/app/payroll"
	"github.com/lysyi3m/radio-guiones/app/programs"
	"github.com/lysyi3m/radio-guiones/app/store"
	"github.com/lysyi3m/radio-guiones/app/tasks"
	"github.com/lysyi3m/radio-guiones/app/users"
)

func main() {
	appConfig, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appConfig == nil {
		// Help was shown
		return
	}

	if appConfig.Debug {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	slog.Info("Starting Radio Guiones server", "version", appConfig.Version)

	db, err := store.Open(appConfig.DBPath)
	if err != nil {
		slog.Error("Failed to open store", "path", appConfig.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("Store ready", "path", appConfig.DBPath)

	registry := programs.NewRegistry(appConfig.ProgramsDir)
	if err := registry.Run(); err != nil {
		slog.Error("Failed to load programs", "dir", appConfig.ProgramsDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Programs loaded", "count", registry.Count())

	userService := users.NewService(db, appConfig.AdminPassword)
	if err := userService.EnsureAdmin(); err != nil {
		slog.Error("Failed to create admin account", "error", err)
		os.Exit(1)
	}

	scripts := guiones.NewService(db, registry)
	catalogService := catalog.NewService(db)

	scheduler := tasks.NewScheduler(scripts, appConfig.WorkerCount,
		time.Duration(appConfig.SchedulerInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(api.Deps{
		Store:    db,
		Registry: registry,
		Fichas:   programs.NewFichas(db),
		Scripts:  scripts,
		News:     newsdesk.NewService(db),
		Users:    userService,
		Catalog:  catalogService,
		Payroll:  payroll.NewService(db, catalogService),
		Syncer:   backup.NewSyncer(&http.Client{}, appConfig.BackupURL, appConfig.UserAgent),
		Channel: newsdesk.Channel{
			Title:   appConfig.StationName,
			Link:    appConfig.SelfURL(),
			Version: appConfig.Version,
		},
	})
	server := api.NewServer(handler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appConfig.Port, "url", appConfig.SelfURL())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("Radio Guiones shutdown complete")
}
