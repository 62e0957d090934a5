package ai

import (
	"context"
	"encoding/json"
	"fmt"

	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	"github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/infra/ai/prompt"
)

// Comparer implements comparison.Comparer on top of a language model.
type Comparer struct {
	Client      domai.Client
	Temperature float32
}

func NewComparer(client domai.Client) *Comparer {
	return &Comparer{Client: client, Temperature: 0.2}
}

func (c *Comparer) Compare(ctx context.Context, labels []comparison.Label, texts []string) ([]comparison.Difference, error) {
	if len(labels) != len(texts) {
		return nil, fmt.Errorf("compare: %d labels for %d texts", len(labels), len(texts))
	}
	names := make([]string, len(labels))
	for i, l := range labels {
		names[i] = string(l)
	}

	out, err := c.Client.Complete(ctx, domai.Request{
		System:      prompt.ComparisonSystem(),
		User:        prompt.Comparison(names, texts),
		Temperature: c.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("comparing contracts: %w", err)
	}

	diffs, err := ParseDifferences(out)
	if err != nil {
		return nil, err
	}
	for i := range diffs {
		diffs[i] = diffs[i].Normalize(len(labels))
	}
	return diffs, nil
}

// ParseDifferences decodes the model answer. Fenced output is unwrapped,
// an empty answer means no differences and a lone row object is accepted
// as a one-element list.
func ParseDifferences(raw string) ([]comparison.Difference, error) {
	text := prompt.StripFences(raw)
	if text == "" {
		return []comparison.Difference{}, nil
	}

	var diffs []comparison.Difference
	if err := json.Unmarshal([]byte(text), &diffs); err == nil {
		if diffs == nil {
			diffs = []comparison.Difference{}
		}
		return diffs, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		if _, ok := obj["clause_category"]; ok {
			var d comparison.Difference
			if err := json.Unmarshal([]byte(text), &d); err == nil {
				return []comparison.Difference{d}, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", comparison.ErrMalformedOutput, snippet(text, 200))
}

func snippet(s string, max int) string {
	if cut, truncated := prompt.Truncate(s, max); truncated {
		return cut + "..."
	}
	return s
}
