package main

import (
	"context"
	"errors"
	"linkguard/internal/api"
	"linkguard/internal/api/handler/v1handler"
	"linkguard/internal/checker"
	"linkguard/internal/config"
	"linkguard/internal/email"
	"linkguard/internal/phishing"
	"linkguard/internal/worker"
	"linkguard/pkg/logger"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func setupServer(ctx context.Context, cfg *config.Config, deps api.Deps) func(ctx context.Context) {
	server, err := api.NewServer(deps, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func setupDecider(ctx context.Context, cfg *config.Config) *phishing.Service {
	decider, err := phishing.NewFromOptions(ctx, phishing.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create phishing decider", zap.Error(err))
	}

	// a missing model is not fatal, requests needing it answer 503 and the load is retried
	if err := decider.Ready(ctx); err != nil {
		logger.Warn(ctx, "phishing classifier is not available yet", zap.Error(err))
	}

	return decider
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and background workers",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			decider := setupDecider(ctx, cfg)
			chk := checker.New(strg, decider, checker.NewOptions(cfg))

			riverClient, err := worker.Start(ctx, strg.Pool, chk, worker.Options{Workers: cfg.Checker.Workers})
			if err != nil {
				logger.Fatal(ctx, "could not start workers", zap.Error(err))
			}

			stopWebserver := setupServer(ctx, cfg, api.Deps{Deps: v1handler.Deps{
				Decider:     decider,
				Categorizer: email.NewService(email.NewOptions(cfg)),
				Checker:     chk,
			}})

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)

			logger.Info(shutdownCtx, "stopping workers...")
			if err := riverClient.Stop(shutdownCtx); err != nil {
				logger.Error(shutdownCtx, "could not stop workers", zap.Error(err))
			}
		},
	}

	return cmd
}
