package report

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

// ErrPDFUnavailable is returned when PDF rendering is disabled.
var ErrPDFUnavailable = comparison.ErrPDFUnavailable

// PDFRenderer prints HTML documents to PDF with a headless Chrome.
type PDFRenderer struct {
	Enabled bool
	// ExecPath overrides the Chrome binary lookup when set.
	ExecPath string
	Timeout  time.Duration
}

// PDF prints html to an A4-ish PDF with background colours kept.
func (r *PDFRenderer) PDF(ctx context.Context, html []byte) ([]byte, error) {
	if r == nil || !r.Enabled {
		return nil, ErrPDFUnavailable
	}
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var out []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			out, _, err = page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("printing report to pdf: %w", err)
	}
	return out, nil
}
