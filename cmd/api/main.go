package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pocketdash/pocketdash/internal/config"
	"github.com/pocketdash/pocketdash/internal/database"
	"github.com/pocketdash/pocketdash/internal/expense"
	expenseStore "github.com/pocketdash/pocketdash/internal/expense/store"
	pocketHttp "github.com/pocketdash/pocketdash/internal/http"
	dashboardHandler "github.com/pocketdash/pocketdash/internal/http/dashboard"
	"github.com/pocketdash/pocketdash/internal/kv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	var blobs kv.Store

	db, err := database.New(cfg.DriverName(), cfg.DSN())
	if err != nil {
		// Fail-soft: the dashboard still works for the session, it just
		// cannot persist across restarts.
		slog.Warn("database unavailable, using in-memory storage", "error", err)
		blobs = kv.NewMemory()
	} else {
		defer db.Close()

		sqlStore, err := kv.NewSQLStore(ctx, db, cfg.DriverName())
		if err != nil {
			slog.Error("failed to initialize blob storage", "error", err)
			os.Exit(1)
		}

		blobs = sqlStore
	}

	var (
		storage = expenseStore.New(blobs, cfg.Storage.Key)
		service = expense.NewService(storage)
	)

	service.Initialize(ctx)

	if !service.StorageAvailable(ctx) {
		slog.Warn("persistence is disabled, changes will not survive restarts")
	}

	router := pocketHttp.New(dashboardHandler.NewHandler(service))

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	go func() {
		slog.Info("starting server", "addr", srv.Addr, "driver", cfg.DriverName())

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
