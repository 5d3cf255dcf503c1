package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tradie_receptionist/internal/calls"
	"tradie_receptionist/internal/health"
	apphttp "tradie_receptionist/internal/http"
	"tradie_receptionist/internal/http/router"
	"tradie_receptionist/internal/operators"
	"tradie_receptionist/internal/scheduler"
	"tradie_receptionist/internal/sms"
	"tradie_receptionist/internal/vapi"
	"tradie_receptionist/platform/config"
	"tradie_receptionist/platform/logger"
	"tradie_receptionist/platform/metrics"
	"tradie_receptionist/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook server and the daily spam report",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)
	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	val := validator.New()
	registry, err := operators.LoadFile(cfg.OperatorsFile, val)
	if err != nil {
		return fmt.Errorf("load operators: %w", err)
	}
	log.Info("operators loaded", "count", registry.Count(), "file", cfg.OperatorsFile)

	met := metrics.New()
	met.OperatorsLoaded(registry.Count())

	store := calls.NewStore()
	notifier := sms.NewNotifier(sms.NewMessenger(cfg, log), log, met)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Metrics: met,
		Modules: []apphttp.Module{
			health.NewModule(registry),
			vapi.NewModule(registry, store, notifier, log, met),
			sms.NewModule(registry, store, notifier, cfg, log),
			calls.NewModule(store),
		},
	}

	report, err := scheduler.NewDailySpamReport(cfg, registry, store, notifier, log, met)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr, "tradies", registry.Count())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return report.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	log.Info("server stopped")
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if operatorsFile != "" {
		cfg.OperatorsFile = operatorsFile
	}
	return cfg, nil
}
