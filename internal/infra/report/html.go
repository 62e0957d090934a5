package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type row struct {
	Category      string
	Details       []string
	AnalysisClass string
	Analysis      string
}

type reportView struct {
	Count  int
	Labels []comparison.Label
	Rows   []row
}

// HTML renders the comparison report. A nil or empty difference list yields
// the basic "no comparison data" page; rows that carry nothing but
// not-found markers are left out.
func HTML(res *comparison.Result) ([]byte, error) {
	if res == nil || len(res.Differences) == 0 {
		return execute("empty.html", nil)
	}

	view := reportView{Count: len(res.Labels), Labels: res.Labels}
	for _, d := range comparison.Visible(res.Differences) {
		d = d.Normalize(len(res.Labels))
		view.Rows = append(view.Rows, row{
			Category:      d.Category,
			Details:       d.Details,
			AnalysisClass: d.AnalysisClass(),
			Analysis:      d.Analysis,
		})
	}
	return execute("report.html", view)
}

// NotReady renders the placeholder page served while a job is still running or failed.
func NotReady(job *comparison.Job) ([]byte, error) {
	return execute("not_ready.html", job)
}

func execute(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("rendering %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// Renderer exposes HTML and NotReady as a comparison.Renderer.
type Renderer struct{}

func (Renderer) HTML(res *comparison.Result) ([]byte, error)  { return HTML(res) }
func (Renderer) NotReady(job *comparison.Job) ([]byte, error) { return NotReady(job) }
