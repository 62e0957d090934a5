package comparison

import "context"

// Repository port (persistence for jobs)
type Repository interface {
	Save(ctx context.Context, j *Job) error
	Get(ctx context.Context, id JobID) (*Job, error)
	Delete(ctx context.Context, id JobID) error
	// Latest lists the newest jobs of owner.
	Latest(ctx context.Context, owner string, limit int) ([]*Job, error)
}

// Extraction is the text of one upload, or the reason it could not be read.
type Extraction struct {
	Name string
	Text string
	Err  error
}

// TextExtractor turns uploaded files into plain text, one Extraction per upload in order.
type TextExtractor interface {
	ExtractAll(ctx context.Context, uploads []Upload) []Extraction
}

// Comparer asks a model for the differences between labelled contract texts.
type Comparer interface {
	Compare(ctx context.Context, labels []Label, texts []string) ([]Difference, error)
}

// Renderer turns results into the HTML report artifact.
type Renderer interface {
	HTML(res *Result) ([]byte, error)
	NotReady(job *Job) ([]byte, error)
}

// Printer converts a rendered HTML report to PDF.
type Printer interface {
	PDF(ctx context.Context, html []byte) ([]byte, error)
}

// Scorer rates the textual similarity of two contracts, 1 meaning identical.
type Scorer interface {
	Ratio(a, b string) float64
}
