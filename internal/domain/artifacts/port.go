package artifacts

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the key does not exist.
var ErrNotFound = errors.New("artifact not found")

// Store port (interface untuk penyimpanan artefak: reports, templates)
type Store interface {
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Check(ctx context.Context) error
}

// ReportKey is where the HTML report of a job is stored.
func ReportKey(jobID string) string { return "reports/" + jobID + ".html" }

// TemplateKey is where an extracted template is stored.
func TemplateKey(name string) string { return "templates/" + name + ".json" }
