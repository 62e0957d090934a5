package drafting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/contractlens/internal/domain/drafting"
)

type memTemplates map[string]*domain.Template

func (m memTemplates) SaveTemplate(_ context.Context, t *domain.Template) error {
	cp := *t
	m[t.Name] = &cp
	return nil
}

func (m memTemplates) LoadTemplate(_ context.Context, name string) (*domain.Template, error) {
	t, ok := m[name]
	if !ok {
		return nil, domain.ErrTemplateNotFound
	}
	cp := *t
	return &cp, nil
}

type fakeAssistant struct {
	template *domain.Template
	styled   string
	err      error
	requests []string
	filled   map[string]string
}

func (f *fakeAssistant) ExtractTemplate(context.Context, string) (*domain.Template, error) {
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.template
	return &cp, nil
}

func (f *fakeAssistant) FillTemplate(_ context.Context, _ *domain.Template, values map[string]string) (string, error) {
	f.filled = values
	return "llm filled", f.err
}

func (f *fakeAssistant) Modify(_ context.Context, contract, request string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, request)
	return contract + "+" + request, nil
}

func (f *fakeAssistant) Sections(context.Context, string) (string, error) {
	return "1. Parties - who signs", f.err
}

func (f *fakeAssistant) Style(context.Context, string, string) (string, error) {
	return f.styled, f.err
}

func ndaTemplate() *domain.Template {
	return &domain.Template{
		Body: "Between Party_Name and {Counterparty}",
		Placeholders: map[string]domain.Placeholder{
			"Party_Name":   {Description: "first party", OriginalValue: "Acme"},
			"Counterparty": {Description: "second party", OriginalValue: "Globex"},
		},
	}
}

func TestExtractTemplate(t *testing.T) {
	ctx := context.Background()
	store := memTemplates{}
	svc := NewService(&fakeAssistant{template: ndaTemplate()}, store, nil)

	tpl, err := svc.ExtractTemplate(ctx, "nda-2025", "Between Acme and Globex")
	require.NoError(t, err)
	assert.Equal(t, "nda-2025", tpl.Name)
	assert.Contains(t, store, "nda-2025")

	_, err = svc.ExtractTemplate(ctx, "../etc", "text")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = svc.ExtractTemplate(ctx, "ok", "  ")
	assert.ErrorIs(t, err, domain.ErrEmptyContract)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("contract_template.v2"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName(".hidden"))
	assert.False(t, ValidName("a/b"))
	assert.False(t, ValidName(strings.Repeat("a", 129)))
}

func TestNameFromFile(t *testing.T) {
	cases := map[string]string{
		"My Contract (v2).pdf":         "My_Contract_v2_",
		"/tmp/uploads/Service NDA.pdf": "Service_NDA",
		"(draft).pdf":                  "draft_",
		".pdf":                         "template",
		"контракт.pdf":                 "template",
	}
	for in, want := range cases {
		got := NameFromFile(in)
		assert.Equal(t, want, got, in)
		assert.True(t, ValidName(got), in)
	}
	assert.True(t, ValidName(NameFromFile(strings.Repeat("x", 300)+".pdf")))
}

func TestPlaceholdersAndGenerate(t *testing.T) {
	ctx := context.Background()
	tpl := ndaTemplate()
	tpl.Name = "nda"
	store := memTemplates{"nda": tpl}
	assistant := &fakeAssistant{}
	svc := NewService(assistant, store, nil)

	ph, err := svc.Placeholders(ctx, "nda")
	require.NoError(t, err)
	assert.Len(t, ph, 2)

	out, err := svc.Generate(ctx, "nda", map[string]string{"Counterparty": "Initech"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Between Acme and Initech", out)

	out, err = svc.Generate(ctx, "nda", map[string]string{"Party_Name": "Umbrella"}, true)
	require.NoError(t, err)
	assert.Equal(t, "llm filled", out)
	assert.Equal(t, "Umbrella", assistant.filled["Party_Name"])

	_, err = svc.Generate(ctx, "missing", nil, false)
	assert.ErrorIs(t, err, domain.ErrTemplateNotFound)

	store["empty"] = &domain.Template{Name: "empty"}
	_, err = svc.Generate(ctx, "empty", nil, false)
	assert.ErrorIs(t, err, domain.ErrEmptyTemplate)

	store["../nda"] = tpl
	_, err = svc.Placeholders(ctx, "../nda")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = svc.Generate(ctx, "../nda", nil, false)
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestModify(t *testing.T) {
	ctx := context.Background()
	assistant := &fakeAssistant{}
	svc := NewService(assistant, memTemplates{}, nil)

	out, err := svc.Modify(ctx, "base", "add clause")
	require.NoError(t, err)
	assert.Equal(t, "base+add clause", out)

	_, err = svc.Modify(ctx, "", "x")
	assert.ErrorIs(t, err, domain.ErrEmptyContract)
	_, err = svc.Modify(ctx, "base", " ")
	assert.ErrorIs(t, err, domain.ErrEmptyRequest)
}

func TestBatchModify(t *testing.T) {
	ctx := context.Background()
	svc := NewService(&fakeAssistant{}, memTemplates{}, nil)

	out, err := svc.BatchModify(ctx, "base", []string{"one", "two"})
	require.NoError(t, err)
	assert.Equal(t, "base+one+two", out)

	_, err = svc.BatchModify(ctx, "base", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyRequest)

	_, err = svc.BatchModify(ctx, "base", []string{"one", ""})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyRequest)
	assert.Contains(t, err.Error(), "modification 2 of 2")
}

func TestSections(t *testing.T) {
	svc := NewService(&fakeAssistant{}, memTemplates{}, nil)
	out, err := svc.Sections(context.Background(), "contract")
	require.NoError(t, err)
	assert.Equal(t, "1. Parties - who signs", out)

	_, err = svc.Sections(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrEmptyContract)
}

func TestStyle(t *testing.T) {
	ctx := context.Background()

	full := "<!DOCTYPE html><HTML><body>x</body></HTML>"
	out, err := NewService(&fakeAssistant{styled: full}, memTemplates{}, nil).Style(ctx, "x", "")
	require.NoError(t, err)
	assert.Equal(t, full, out)

	out, err = NewService(&fakeAssistant{styled: "<p>partial</p>"}, memTemplates{}, nil).Style(ctx, "a < b", "")
	require.NoError(t, err)
	assert.Equal(t, FallbackHTML("a < b"), out)
	assert.Contains(t, out, "<pre>a &lt; b</pre>")

	boom := errors.New("boom")
	_, err = NewService(&fakeAssistant{err: boom}, memTemplates{}, nil).Style(ctx, "x", "")
	assert.ErrorIs(t, err, boom)
}
