// Package commands implements the contractlens command line tool.
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	appcmp "github.com/bryanwahyu/contractlens/internal/application/comparison"
	appdraft "github.com/bryanwahyu/contractlens/internal/application/drafting"
	"github.com/bryanwahyu/contractlens/internal/bootstrap"
	"github.com/bryanwahyu/contractlens/internal/config"
	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/infra/ai"
	"github.com/bryanwahyu/contractlens/internal/infra/pdf"
	"github.com/bryanwahyu/contractlens/internal/infra/report"
	"github.com/bryanwahyu/contractlens/internal/infra/similarity"
	"github.com/bryanwahyu/contractlens/internal/infra/storage"
)

var (
	configPath string
	verbose    bool
	provider   string
	model      string

	cfg    *config.Config
	logger *zap.Logger
	client domai.Client
)

func Execute() error {
	root := &cobra.Command{
		Use:           "contractlens",
		Short:         "Compare, template and edit contracts with an LLM",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			if cfg, err = config.Load(configPath); err != nil {
				return err
			}
			if provider != "" {
				cfg.UseProvider(provider)
			}
			if model != "" {
				cfg.LLM.Model = model
			}
			if logger, err = bootstrap.Logger(cfg.Log.Level, verbose); err != nil {
				return err
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	defaultConfig := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultConfig = v
	}
	root.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "path to config.yaml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&provider, "provider", "", "llm provider: gemini or openai")
	root.PersistentFlags().StringVar(&model, "model", "", "llm model name")

	root.AddCommand(compareCmd(), templateCmd(), modifyCmd(), sectionsCmd(), styleCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

// llm builds the model client on first use so commands that never call it
// work without an API key.
func llm(ctx context.Context) (domai.Client, error) {
	if client != nil {
		return client, nil
	}
	c, err := bootstrap.LLM(ctx, cfg, logger, nil)
	if err != nil {
		return nil, err
	}
	client = c
	return client, nil
}

func comparisonService(ctx context.Context) (*appcmp.Service, error) {
	c, err := llm(ctx)
	if err != nil {
		return nil, err
	}
	return &appcmp.Service{
		Comparer:     ai.NewComparer(c),
		Renderer:     report.Renderer{},
		Scorer:       similarity.Scorer{},
		Logger:       logger.Named("comparison"),
		MaxChars:     cfg.Limits.MaxChars,
		MaxContracts: cfg.Limits.MaxContracts,
	}, nil
}

// draftingService needs the model only when withLLM is set.
func draftingService(ctx context.Context, withLLM bool) (*appdraft.Service, error) {
	store, err := bootstrap.Store(ctx, cfg)
	if err != nil {
		return nil, err
	}
	var assistant *ai.Drafter
	if withLLM {
		c, err := llm(ctx)
		if err != nil {
			return nil, err
		}
		assistant = ai.NewDrafter(c)
	}
	svc := appdraft.NewService(nil, storage.NewTemplateStore(store), logger.Named("drafting"))
	if assistant != nil {
		svc.Assistant = assistant
	}
	return svc, nil
}

// readContract returns the text of a .pdf or plain text file.
func readContract(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return string(data), nil
	}
	ex := pdf.NewExtractor(1).ExtractAll(ctx, []domain.Upload{{Name: filepath.Base(path), Data: data}})[0]
	if ex.Err != nil {
		return "", fmt.Errorf("%s: %w", path, ex.Err)
	}
	return ex.Text, nil
}

// writeOutput writes to path, or stdout when path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
