package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"activityservice/internal/app/config"
	httpapi "activityservice/internal/app/http"
	"activityservice/internal/app/http/handler"
	"activityservice/internal/domain/analytics"
	"activityservice/internal/domain/provision"
	"activityservice/internal/infrastructure/async"
	"activityservice/internal/infrastructure/githubapi"
	"activityservice/internal/infrastructure/kasm"
	"activityservice/internal/infrastructure/logging"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	auditBus := async.NewAuditBus(ctx, 4, log)
	defer auditBus.Close()

	github := githubapi.New(githubapi.Config{
		BaseURL:    cfg.GitHub.APIURL,
		GraphQLURL: cfg.GitHub.GraphQLURL,
		Token:      cfg.GitHub.Token,
		Timeout:    cfg.UpstreamTimeout,
	}, log)
	if cfg.GitHub.Token == "" {
		log.Warn("GITHUB_TOKEN not set, profile lookups serve offline placeholders")
	}

	kasmClient := kasm.New(kasm.Config{
		Server:       cfg.Kasm.Server,
		APIKey:       cfg.Kasm.APIKey,
		APIKeySecret: cfg.Kasm.APIKeySecret,
		Timeout:      cfg.UpstreamTimeout,
	}, log)

	analyticsSvc := analytics.NewService(github, github.WithRetry(), time.Now)
	provisionSvc := provision.NewService(kasmClient, auditBus)

	h := handler.New(analyticsSvc, provisionSvc, log)
	router := httpapi.NewRouter(h, log)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout: 5 * time.Second,
		// The retrying admin paths can back off for tens of seconds.
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
