package ai

import "context"

// Request is a single prompt sent to a language model.
type Request struct {
	System      string
	User        string
	Temperature float32
	// JSON asks the provider for a single JSON object response when it supports it.
	JSON bool
}

// Client is the port every LLM backend implements.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}
