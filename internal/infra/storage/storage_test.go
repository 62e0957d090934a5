package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/contractlens/internal/domain/artifacts"
	"github.com/bryanwahyu/contractlens/internal/domain/drafting"
)

func TestLocal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	l, err := NewLocal(filepath.Join(root, "nested"))
	require.NoError(t, err)
	require.NoError(t, l.Check(ctx))

	loc, err := l.Put(ctx, artifacts.ReportKey("job-1"), "text/html", []byte("<html></html>"))
	require.NoError(t, err)
	assert.FileExists(t, loc)

	got, err := l.Get(ctx, artifacts.ReportKey("job-1"))
	require.NoError(t, err)
	assert.Equal(t, "<html></html>", string(got))

	require.NoError(t, l.Delete(ctx, artifacts.ReportKey("job-1")))
	_, err = l.Get(ctx, artifacts.ReportKey("job-1"))
	assert.ErrorIs(t, err, artifacts.ErrNotFound)
	assert.ErrorIs(t, l.Delete(ctx, artifacts.ReportKey("job-1")), artifacts.ErrNotFound)
}

func TestLocal_RejectsEscapingKeys(t *testing.T) {
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside.html", "reports/../../x"} {
		_, err := l.Put(context.Background(), key, "", []byte("x"))
		assert.Error(t, err, key)
	}
}

func TestLocal_CheckFailsOnFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))
	assert.Error(t, (&Local{Root: f}).Check(context.Background()))
}

func TestTemplateStore(t *testing.T) {
	ctx := context.Background()
	l, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	ts := NewTemplateStore(l)

	_, err = ts.LoadTemplate(ctx, "missing")
	assert.ErrorIs(t, err, drafting.ErrTemplateNotFound)

	tpl := &drafting.Template{
		Name: "nda",
		Body: "Between Party_Name",
		Placeholders: map[string]drafting.Placeholder{
			"Party_Name": {Description: "party", OriginalValue: "Acme"},
		},
	}
	require.NoError(t, ts.SaveTemplate(ctx, tpl))

	got, err := ts.LoadTemplate(ctx, "nda")
	require.NoError(t, err)
	assert.Equal(t, tpl, got)
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", ContentType("templates/a.json"))
	assert.Equal(t, "text/html; charset=utf-8", ContentType("reports/a.html"))
	assert.Equal(t, "application/pdf", ContentType("a.pdf"))
	assert.Equal(t, "application/octet-stream", ContentType("a"))
}
