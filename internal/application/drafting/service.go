package drafting

import (
	"context"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	domain "github.com/bryanwahyu/contractlens/internal/domain/drafting"
)

var (
	templateName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)
	unsafeName   = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)
)

type Service struct {
	Assistant domain.Assistant
	Templates domain.TemplateStore
	Logger    *zap.Logger
}

func NewService(assistant domain.Assistant, templates domain.TemplateStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{Assistant: assistant, Templates: templates, Logger: logger}
}

// ValidName reports whether name can be used as a template key.
func ValidName(name string) bool { return templateName.MatchString(name) }

// NameFromFile derives a valid template name from an uploaded file name.
func NameFromFile(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	name := strings.TrimLeft(unsafeName.ReplaceAllString(base, "_"), "_.-")
	if len(name) > 128 {
		name = name[:128]
	}
	if name == "" {
		return "template"
	}
	return name
}

func (s *Service) load(ctx context.Context, name string) (*domain.Template, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	return s.Templates.LoadTemplate(ctx, name)
}

// ExtractTemplate turns a contract into a reusable template and stores it under name.
func (s *Service) ExtractTemplate(ctx context.Context, name, contract string) (*domain.Template, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidName, name)
	}
	if strings.TrimSpace(contract) == "" {
		return nil, domain.ErrEmptyContract
	}
	tpl, err := s.Assistant.ExtractTemplate(ctx, contract)
	if err != nil {
		return nil, err
	}
	tpl.Name = name
	if err := s.Templates.SaveTemplate(ctx, tpl); err != nil {
		return nil, fmt.Errorf("saving template %s: %w", name, err)
	}
	s.Logger.Info("template extracted",
		zap.String("template", name),
		zap.Int("placeholders", len(tpl.Placeholders)))
	return tpl, nil
}

// Placeholders returns the placeholders of a stored template.
func (s *Service) Placeholders(ctx context.Context, name string) (map[string]domain.Placeholder, error) {
	tpl, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return tpl.Placeholders, nil
}

// Generate fills a stored template with values, locally or through the model.
func (s *Service) Generate(ctx context.Context, name string, values map[string]string, useLLM bool) (string, error) {
	tpl, err := s.load(ctx, name)
	if err != nil {
		return "", err
	}
	if err := tpl.Validate(); err != nil {
		return "", err
	}
	if useLLM {
		return s.Assistant.FillTemplate(ctx, tpl, values)
	}
	return tpl.Fill(values), nil
}

func (s *Service) Modify(ctx context.Context, contract, request string) (string, error) {
	if strings.TrimSpace(contract) == "" {
		return "", domain.ErrEmptyContract
	}
	if strings.TrimSpace(request) == "" {
		return "", domain.ErrEmptyRequest
	}
	return s.Assistant.Modify(ctx, contract, request)
}

// BatchModify applies the requests one after another, each on the previous result.
func (s *Service) BatchModify(ctx context.Context, contract string, requests []string) (string, error) {
	if len(requests) == 0 {
		return "", domain.ErrEmptyRequest
	}
	out := contract
	for i, req := range requests {
		next, err := s.Modify(ctx, out, req)
		if err != nil {
			return "", fmt.Errorf("modification %d of %d: %w", i+1, len(requests), err)
		}
		out = next
	}
	return out, nil
}

func (s *Service) Sections(ctx context.Context, contract string) (string, error) {
	if strings.TrimSpace(contract) == "" {
		return "", domain.ErrEmptyContract
	}
	return s.Assistant.Sections(ctx, contract)
}

// Style returns an HTML rendition of text. When the model does not answer
// with a full document the text is wrapped in an escaped <pre> page.
func (s *Service) Style(ctx context.Context, text, instructions string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", domain.ErrEmptyContract
	}
	out, err := s.Assistant.Style(ctx, text, instructions)
	if err != nil {
		return "", err
	}
	lower := strings.ToLower(out)
	if strings.Contains(lower, "<html") && strings.Contains(lower, "</html>") {
		return out, nil
	}
	s.Logger.Warn("styled output is not a full html document, using plain fallback", zap.Int("length", len(out)))
	return FallbackHTML(text), nil
}

// FallbackHTML wraps plain text in a minimal escaped HTML page.
func FallbackHTML(text string) string {
	return "<!DOCTYPE html>\n<html>\n<head><meta charset=\"UTF-8\"><title>Document</title></head>\n<body><pre>" +
		html.EscapeString(text) + "</pre></body>\n</html>\n"
}
