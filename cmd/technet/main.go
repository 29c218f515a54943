package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"technet-admin/internal/app"
	"technet-admin/internal/config"
	"technet-admin/internal/logger"
	generate_excel "technet-admin/internal/service/generate-excel"
)

func main() {
	cfg := config.MustConfig()

	log := logger.New(cfg.Env, os.Stdout, cfg.ErrorsLog)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api, err := app.Technet(ctx, log, cfg.Technet)
	if err != nil {
		log.Error("failed to connect technet", slog.String("error", err.Error()))
		os.Exit(1)
	}

	journal, err := app.Journal(ctx, cfg.DB)
	if err != nil {
		log.Error("failed to open db", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if journal != nil {
		defer journal.Close()
	} else {
		log.Info("import journal disabled: db.name is empty")
	}

	deps := dependencies{
		api:      api,
		importer: app.Importer(log, api, journal, cfg.Import),
		excel:    generate_excel.NewGenerateService(api),
		maxBytes: app.MaxUploadBytes(cfg.Import),
	}
	if journal != nil {
		deps.runs = journal
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, deps),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("failed to shutdown server", slog.String("error", err.Error()))
		}
	}()

	log.Info("server started", slog.String("address", cfg.Address), slog.String("technet", cfg.Technet.BaseURL))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("failed start server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped")
}
