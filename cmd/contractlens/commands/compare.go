package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/infra/pdf"
	"github.com/bryanwahyu/contractlens/internal/infra/report"
)

// compare <pdf>...: compare 2..10 contracts and write the HTML report.
func compareCmd() *cobra.Command {
	var (
		output  string
		pdfOut  string
		asJSON  bool
		workers int
	)
	cmd := &cobra.Command{
		Use:   "compare <contract.pdf> <contract.pdf> [more.pdf...]",
		Short: "Compare 2 to 10 PDF contracts and write an HTML report",
		Args:  cobra.RangeArgs(domain.MinContracts, domain.MaxContracts),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			uploads := make([]domain.Upload, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}
				uploads = append(uploads, domain.Upload{Name: filepath.Base(path), Data: data})
			}

			var docs []domain.Document
			for i, ex := range pdf.NewExtractor(workers).ExtractAll(ctx, uploads) {
				if ex.Err != nil {
					logger.Warn("skipping contract", zap.String("label", string(domain.LabelFor(i))), zap.String("file", ex.Name), zap.Error(ex.Err))
					continue
				}
				docs = append(docs, domain.Document{Name: ex.Name, Text: ex.Text})
			}

			svc, err := comparisonService(ctx)
			if err != nil {
				return err
			}
			res, cmpErr := svc.Compare(ctx, docs)
			if cmpErr != nil {
				// the fallback page still documents that the run produced nothing
				res = nil
			}

			html, err := report.HTML(res)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd, output, html); err != nil {
				return err
			}
			if cmpErr != nil {
				return fmt.Errorf("comparison failed: %w", cmpErr)
			}
			for _, w := range res.Warnings {
				logger.Warn(w)
			}
			logger.Info("report written",
				zap.String("output", output),
				zap.Int("differences", len(res.Differences)),
				zap.Int("shown", len(domain.Visible(res.Differences))))

			if pdfOut != "" {
				printer := &report.PDFRenderer{Enabled: true, ExecPath: cfg.Report.PDF.ChromePath, Timeout: cfg.Report.PDF.Timeout}
				data, err := printer.PDF(ctx, html)
				if err != nil {
					return err
				}
				if err := writeOutput(cmd, pdfOut, data); err != nil {
					return err
				}
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "contract_comparison_report.html", "HTML report path (- for stdout)")
	cmd.Flags().StringVar(&pdfOut, "pdf", "", "also print the report to this PDF path")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the comparison data as JSON")
	cmd.Flags().IntVar(&workers, "workers", 4, "parallel PDF extractions")
	return cmd
}
