// Package bootstrap builds the adapters selected by the configuration.
// It is shared by the API server and the command line tool.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bryanwahyu/contractlens/internal/config"
	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	"github.com/bryanwahyu/contractlens/internal/domain/artifacts"
	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/infra/ai"
	"github.com/bryanwahyu/contractlens/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/contractlens/internal/infra/db/mysql"
	"github.com/bryanwahyu/contractlens/internal/infra/db/postgres"
	"github.com/bryanwahyu/contractlens/internal/infra/db/sqldb"
	"github.com/bryanwahyu/contractlens/internal/infra/storage"
)

// Logger builds a production zap logger; verbose or level "debug" lowers it to debug.
func Logger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	lvl := zapcore.InfoLevel
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToLower(level))); err != nil {
			return nil, fmt.Errorf("log level %q: %w", level, err)
		}
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// LLM returns the configured model client wrapped with retries.
func LLM(ctx context.Context, cfg *config.Config, logger *zap.Logger, onCall func()) (domai.Client, error) {
	return ai.New(ctx, ai.Options{
		Provider: cfg.LLM.Provider,
		APIKey:   cfg.LLM.APIKey,
		Model:    cfg.LLM.Model,
		BaseURL:  cfg.LLM.BaseURL,
		Attempts: cfg.LLM.Attempts,
		Delay:    cfg.LLM.RetryDelay,
		OnCall:   onCall,
	}, logger)
}

// JobRepo is a job repository that can report its health.
type JobRepo interface {
	domain.Repository
	Check(ctx context.Context) error
}

// Jobs opens the configured job repository. The returned close func is never nil.
func Jobs(ctx context.Context, cfg *config.Config) (JobRepo, func() error, error) {
	noop := func() error { return nil }
	pool := sqldb.Pool{
		MaxOpen:     cfg.Database.MaxOpenConns,
		MaxIdle:     cfg.Database.MaxIdleConns,
		MaxLifetime: cfg.Database.ConnMaxLifetime,
		Attempts:    cfg.Database.ConnectAttempts,
	}

	var (
		db  *sql.DB
		err error
	)
	switch cfg.Database.Driver {
	case "", "memory":
		return memory.NewJobRepository(), noop, nil
	case "mysql":
		if db, err = mysqlp.Connect(ctx, cfg.MySQLDSN(), pool); err != nil {
			return nil, noop, fmt.Errorf("mysql connect: %w", err)
		}
		repo := mysqlp.NewJobRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		return repo, db.Close, nil
	case "postgres":
		if db, err = postgres.Connect(ctx, cfg.PostgresDSN(), pool); err != nil {
			return nil, noop, fmt.Errorf("postgres connect: %w", err)
		}
		repo := postgres.NewJobRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, noop, err
		}
		return repo, db.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown database driver %q (allowed: memory, mysql, postgres)", cfg.Database.Driver)
}

// Store opens the configured artifact store.
func Store(ctx context.Context, cfg *config.Config) (artifacts.Store, error) {
	switch cfg.Storage.Driver {
	case "", "local":
		local, err := storage.NewLocal(cfg.Storage.LocalDir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "minio":
		store, err := storage.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			return nil, fmt.Errorf("minio init: %w", err)
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q (allowed: local, minio)", cfg.Storage.Driver)
}
