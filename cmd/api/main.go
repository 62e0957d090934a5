package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bryanwahyu/contractlens/internal/application"
	appcmp "github.com/bryanwahyu/contractlens/internal/application/comparison"
	appdraft "github.com/bryanwahyu/contractlens/internal/application/drafting"
	"github.com/bryanwahyu/contractlens/internal/bootstrap"
	"github.com/bryanwahyu/contractlens/internal/config"
	"github.com/bryanwahyu/contractlens/internal/infra/ai"
	"github.com/bryanwahyu/contractlens/internal/infra/httpserver"
	"github.com/bryanwahyu/contractlens/internal/infra/pdf"
	"github.com/bryanwahyu/contractlens/internal/infra/report"
	"github.com/bryanwahyu/contractlens/internal/infra/similarity"
	"github.com/bryanwahyu/contractlens/internal/infra/storage"
	"github.com/bryanwahyu/contractlens/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	logger, err := bootstrap.Logger(cfg.Log.Level, os.Getenv("VERBOSE") != "")
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx := context.Background()

	// job repository
	repo, closeDB, err := bootstrap.Jobs(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	// artifact store (reports, templates)
	store, err := bootstrap.Store(ctx, cfg)
	if err != nil {
		return err
	}

	// llm
	client, err := bootstrap.LLM(ctx, cfg, logger, middleware.IncrementLLMCalls)
	if err != nil {
		return fmt.Errorf("llm init: %w", err)
	}

	extractor := pdf.NewExtractor(cfg.Limits.Workers)

	// init services
	compareSvc := &appcmp.Service{
		Repo:         repo,
		Extractor:    extractor,
		Comparer:     ai.NewComparer(client),
		Renderer:     report.Renderer{},
		Store:        store,
		Clock:        application.SystemClock{},
		Logger:       logger.Named("comparison"),
		Scorer:       similarity.Scorer{},
		MaxChars:     cfg.Limits.MaxChars,
		MaxContracts: cfg.Limits.MaxContracts,
	}
	if cfg.Report.PDF.Enabled {
		compareSvc.Printer = &report.PDFRenderer{
			Enabled:  true,
			ExecPath: cfg.Report.PDF.ChromePath,
			Timeout:  cfg.Report.PDF.Timeout,
		}
	}
	draftSvc := appdraft.NewService(ai.NewDrafter(client), storage.NewTemplateStore(store), logger.Named("drafting"))

	// init router
	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(httpserver.Options{
		Compare:   compareSvc,
		Drafting:  draftSvc,
		Extractor: extractor,
		Logger:    logger.Named("http"),
		Checkers: map[string]middleware.HealthChecker{
			"database": repo,
			"storage":  store,
		},
		APIKeys:        cfg.Auth.APIKeys,
		RateBurst:      cfg.RateLimit.Burst,
		RatePerMinute:  cfg.RateLimit.RequestsPerMinute,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxUploadBytes: cfg.Limits.MaxUploadMB << 20,
		MaxContracts:   cfg.Limits.MaxContracts,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening",
			zap.String("addr", addr),
			zap.String("llm_provider", cfg.LLM.Provider),
			zap.String("database", cfg.Database.Driver),
			zap.String("storage", cfg.Storage.Driver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-stop:
	}
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		logger.Warn("shutdown error", zap.Error(err))
	}

	// let background comparisons finish their bookkeeping
	done := make(chan struct{})
	go func() {
		compareSvc.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx2.Done():
		logger.Warn("background jobs still running at shutdown")
	}
	return nil
}
