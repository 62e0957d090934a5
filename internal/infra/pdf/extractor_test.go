package pdf

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

func fixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestExtract_TextPDF(t *testing.T) {
	text, err := NewExtractor(1).Extract(context.Background(), "delaware.pdf", fixture(t, "delaware.pdf"))
	require.NoError(t, err)
	assert.Contains(t, text, "Governing law: Delaware [*]")
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewExtractor(1).Extract(ctx, "delaware.pdf", fixture(t, "delaware.pdf"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractAll_PreservesOrder(t *testing.T) {
	delaware, newYork := fixture(t, "delaware.pdf"), fixture(t, "newyork.pdf")
	uploads := []comparison.Upload{
		{Name: "ny-1.pdf", Data: newYork},
		{Name: "de.pdf", Data: delaware},
		{Name: "broken.pdf", Data: []byte("garbage")},
		{Name: "ny-2.pdf", Data: newYork},
	}
	out := NewExtractor(2).ExtractAll(context.Background(), uploads)

	require.Len(t, out, 4)
	for i, ex := range out {
		assert.Equal(t, uploads[i].Name, ex.Name)
	}
	require.NoError(t, out[0].Err)
	assert.Contains(t, out[0].Text, "Governing law: New York")
	require.NoError(t, out[1].Err)
	assert.Contains(t, out[1].Text, "Governing law: Delaware")
	assert.Error(t, out[2].Err)
	require.NoError(t, out[3].Err)
	assert.Contains(t, out[3].Text, "Governing law: New York")
}

func TestExtract_RejectsGarbage(t *testing.T) {
	_, err := NewExtractor(1).Extract(context.Background(), "x.pdf", []byte("not a pdf at all"))
	assert.Error(t, err)
}

func TestExtractAll_KeepsOrderAndIsolatesFailures(t *testing.T) {
	uploads := []comparison.Upload{
		{Name: "a.pdf", Data: []byte("garbage")},
		{Name: "b.pdf", Data: nil},
		{Name: "c.pdf", Data: []byte("%PDF-1.4 truncated")},
	}
	out := (&Extractor{}).ExtractAll(context.Background(), uploads)

	assert.Len(t, out, 3)
	for i, ex := range out {
		assert.Equal(t, uploads[i].Name, ex.Name)
		assert.Error(t, ex.Err)
		assert.Empty(t, ex.Text)
	}
}

func TestNewExtractor_DefaultsWorkers(t *testing.T) {
	assert.Equal(t, 4, NewExtractor(0).Workers)
	assert.Equal(t, 2, NewExtractor(2).Workers)
}
