package ai

import (
	"context"
	"errors"
	"time"

	"github.com/avast/retry-go/v4"
	"go.uber.org/zap"

	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
)

// Retrying wraps a Client and retries transient failures with backoff.
// Missing keys, quota errors and cancelled contexts are returned at once.
type Retrying struct {
	Next     domai.Client
	Attempts uint
	Delay    time.Duration
	Logger   *zap.Logger
	// OnCall, when set, runs before every attempt.
	OnCall func()
}

func NewRetrying(next domai.Client, attempts uint, delay time.Duration, logger *zap.Logger) *Retrying {
	if attempts == 0 {
		attempts = 3
	}
	if delay <= 0 {
		delay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Retrying{Next: next, Attempts: attempts, Delay: delay, Logger: logger}
}

func (r *Retrying) Complete(ctx context.Context, req domai.Request) (string, error) {
	var out string
	err := retry.Do(func() error {
		if r.OnCall != nil {
			r.OnCall()
		}
		var err error
		out, err = r.Next.Complete(ctx, req)
		return err
	},
		retry.Context(ctx),
		retry.Attempts(r.Attempts),
		retry.Delay(r.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(retryable),
		retry.OnRetry(func(attempt uint, err error) {
			r.Logger.Warn("llm call failed, retrying",
				zap.Uint("attempt", attempt+1),
				zap.Uint("max_attempts", r.Attempts),
				zap.Error(err))
		}),
	)
	if err != nil {
		return "", err
	}
	return out, nil
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, domai.ErrMissingAPIKey),
		errors.Is(err, domai.ErrQuotaExceeded),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return false
	}
	return true
}
