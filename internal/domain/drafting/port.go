package drafting

import "context"

// TemplateStore persists extracted templates by name.
type TemplateStore interface {
	SaveTemplate(ctx context.Context, t *Template) error
	LoadTemplate(ctx context.Context, name string) (*Template, error)
}

// Assistant is the language-model side of drafting. Implementations return
// the model's answer with markdown fences already removed.
type Assistant interface {
	ExtractTemplate(ctx context.Context, contract string) (*Template, error)
	FillTemplate(ctx context.Context, t *Template, values map[string]string) (string, error)
	Modify(ctx context.Context, contract, request string) (string, error)
	Sections(ctx context.Context, contract string) (string, error)
	Style(ctx context.Context, text, instructions string) (string, error)
}
