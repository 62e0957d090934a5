package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	"github.com/bryanwahyu/contractlens/internal/infra/ai/gemini"
	"github.com/bryanwahyu/contractlens/internal/infra/ai/openai"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Options selects and configures an LLM backend.
type Options struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Attempts uint
	Delay    time.Duration
	OnCall   func()
}

// New builds the configured backend wrapped in Retrying. Without an API key
// it returns a client that fails every call with ErrMissingAPIKey, so the
// features that do not need the model keep working.
func New(ctx context.Context, opts Options, logger *zap.Logger) (domai.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	provider := strings.ToLower(opts.Provider)
	if provider == "" {
		provider = ProviderGemini
	}
	if provider != ProviderGemini && provider != ProviderOpenAI {
		return nil, fmt.Errorf("unknown llm provider %q (allowed: gemini, openai)", opts.Provider)
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		logger.Warn("llm api key is not configured, model features are disabled", zap.String("provider", provider))
		return unconfigured{provider: provider}, nil
	}

	var (
		client domai.Client
		err    error
	)
	switch provider {
	case ProviderGemini:
		client, err = gemini.NewClient(ctx, opts.APIKey, opts.Model)
	case ProviderOpenAI:
		client, err = openai.NewClient(opts.APIKey, opts.Model, opts.BaseURL)
	}
	if err != nil {
		return nil, err
	}
	r := NewRetrying(client, opts.Attempts, opts.Delay, logger)
	r.OnCall = opts.OnCall
	return r, nil
}

type unconfigured struct{ provider string }

func (u unconfigured) Complete(context.Context, domai.Request) (string, error) {
	return "", fmt.Errorf("%s: %w", u.provider, domai.ErrMissingAPIKey)
}
