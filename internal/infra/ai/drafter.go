package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	"github.com/bryanwahyu/contractlens/internal/domain/drafting"
	"github.com/bryanwahyu/contractlens/internal/infra/ai/prompt"
)

// Drafter implements drafting.Assistant with a language model.
type Drafter struct {
	Client domai.Client
}

func NewDrafter(client domai.Client) *Drafter {
	return &Drafter{Client: client}
}

func (d *Drafter) ask(ctx context.Context, user string, temperature float32, asJSON bool) (string, error) {
	out, err := d.Client.Complete(ctx, domai.Request{User: user, Temperature: temperature, JSON: asJSON})
	if err != nil {
		return "", err
	}
	return prompt.StripFences(out), nil
}

func (d *Drafter) ExtractTemplate(ctx context.Context, contract string) (*drafting.Template, error) {
	out, err := d.ask(ctx, prompt.TemplateExtraction(prompt.CleanText(contract)), 0.1, true)
	if err != nil {
		return nil, fmt.Errorf("extracting template: %w", err)
	}
	var tpl drafting.Template
	if err := json.Unmarshal([]byte(out), &tpl); err != nil {
		return nil, fmt.Errorf("%w: %v", drafting.ErrInvalidTemplate, err)
	}
	if err := tpl.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", drafting.ErrInvalidTemplate, err)
	}
	if tpl.Placeholders == nil {
		tpl.Placeholders = map[string]drafting.Placeholder{}
	}
	return &tpl, nil
}

func (d *Drafter) FillTemplate(ctx context.Context, t *drafting.Template, values map[string]string) (string, error) {
	resolved := make(map[string]string, len(t.Placeholders))
	for _, name := range t.Names() {
		p := t.Placeholders[name]
		switch {
		case values[name] != "":
			resolved[name] = values[name]
		case p.Value != "":
			resolved[name] = p.Value
		default:
			resolved[name] = p.OriginalValue
		}
	}
	raw, err := json.MarshalIndent(resolved, "", "  ")
	if err != nil {
		return "", err
	}
	out, err := d.ask(ctx, prompt.TemplateFill(t.Body, string(raw)), 0.1, false)
	if err != nil {
		return "", fmt.Errorf("generating contract: %w", err)
	}
	return out, nil
}

func (d *Drafter) Modify(ctx context.Context, contract, request string) (string, error) {
	out, err := d.ask(ctx, prompt.Modification(contract, request), 0.3, false)
	if err != nil {
		return "", fmt.Errorf("modifying contract: %w", err)
	}
	return out, nil
}

func (d *Drafter) Sections(ctx context.Context, contract string) (string, error) {
	out, err := d.ask(ctx, prompt.SectionSummary(contract), 0.2, false)
	if err != nil {
		return "", fmt.Errorf("summarizing sections: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (d *Drafter) Style(ctx context.Context, text, instructions string) (string, error) {
	out, err := d.ask(ctx, prompt.Styling(text, instructions), 0.4, false)
	if err != nil {
		return "", fmt.Errorf("styling document: %w", err)
	}
	return out, nil
}
