package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/viccjiang/hexadmin/internal/backend"
	"github.com/viccjiang/hexadmin/internal/config"
	"github.com/viccjiang/hexadmin/internal/console"
	apphttp "github.com/viccjiang/hexadmin/internal/http"
	"github.com/viccjiang/hexadmin/internal/http/flash"
	"github.com/viccjiang/hexadmin/internal/http/wscookie"
	"github.com/viccjiang/hexadmin/internal/storage"
	"github.com/viccjiang/hexadmin/templates"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, closeLog := config.NewLogger(cfg)
	slog.SetDefault(logger)

	err = run(cfg, logger)
	if err != nil {
		logger.Error("console_stopped", slog.Any("err", err))
	}
	closeLog.Close()
	if err != nil {
		os.Exit(1)
	}
}

// run serves the console until SIGINT/SIGTERM. Everything it starts is torn
// down before it returns.
func run(cfg config.Config, logger *slog.Logger) error {
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	client, err := backend.NewClient(backend.Config{
		BaseURL: cfg.APIBase,
		APIPath: cfg.APIPath,
		Timeout: cfg.BackendTimeout,
	})
	if err != nil {
		return fmt.Errorf("backend client: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	tpl, err := templates.Parse()
	if err != nil {
		return fmt.Errorf("templates: %w", err)
	}

	registry := console.NewRegistry(client, logger, cfg.WorkspaceIdleTTL)
	stopSweeper, err := registry.StartSweeper(cfg.SweepSpec)
	if err != nil {
		return fmt.Errorf("WORKSPACE_SWEEP_SPEC: %w", err)
	}
	defer stopSweeper()

	deps := apphttp.Deps{
		Log:          logger,
		Templates:    tpl,
		Registry:     registry,
		Flash:        flash.NewCodec(cfg.CookieSecret, "", cfg.CookieSecure),
		Workspace:    wscookie.New(cfg.CookieSecret, "", cfg.CookieSecure, cfg.WorkspaceIdleTTL),
		SecureCookie: cfg.CookieSecure,
		Storage:      store.Storage,
		MaxUpload:    cfg.MaxUpload,
	}
	if store.Driver == "local" {
		deps.LocalDir = cfg.Storage.LocalDir
		deps.LocalURLPrefix = cfg.Storage.LocalURLPrefix
	}

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("console_listening",
		slog.String("addr", cfg.ListenAddr),
		slog.String("api_base", cfg.APIBase),
		slog.String("storage", store.Driver),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
