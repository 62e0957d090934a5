package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

// ErrNoText is returned for PDFs without an extractable text layer (scans, empty files).
var ErrNoText = errors.New("no text extracted; the PDF might be image-based or empty")

// Extractor reads the text layer of PDF documents.
type Extractor struct {
	// Workers bounds ExtractAll concurrency.
	Workers int
}

func NewExtractor(workers int) *Extractor {
	if workers <= 0 {
		workers = 4
	}
	return &Extractor{Workers: workers}
}

// Extract returns the concatenated text of every page.
func (e *Extractor) Extract(ctx context.Context, name string, data []byte) (text string, err error) {
	// the pdf reader panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading PDF %s: %v", name, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading PDF %s: %w", name, err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pageText, err := p.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("reading page %d of %s: %w", i, name, err)
		}
		b.WriteString(pageText)
	}

	if strings.TrimSpace(b.String()) == "" {
		return "", fmt.Errorf("%s: %w", name, ErrNoText)
	}
	return b.String(), nil
}

// ExtractAll extracts every upload concurrently. Results keep the input order;
// a failing document does not stop the others.
func (e *Extractor) ExtractAll(ctx context.Context, uploads []comparison.Upload) []comparison.Extraction {
	out := make([]comparison.Extraction, len(uploads))
	g, gctx := errgroup.WithContext(ctx)
	workers := e.Workers
	if workers <= 0 {
		workers = 4
	}
	g.SetLimit(workers)
	for i, up := range uploads {
		g.Go(func() error {
			text, err := e.Extract(gctx, up.Name, up.Data)
			out[i] = comparison.Extraction{Name: up.Name, Text: text, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
