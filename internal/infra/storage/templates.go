package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bryanwahyu/contractlens/internal/domain/artifacts"
	"github.com/bryanwahyu/contractlens/internal/domain/drafting"
)

// TemplateStore keeps drafting templates as JSON documents in an artifact store.
type TemplateStore struct {
	Store artifacts.Store
}

func NewTemplateStore(s artifacts.Store) *TemplateStore {
	return &TemplateStore{Store: s}
}

func (t *TemplateStore) SaveTemplate(ctx context.Context, tpl *drafting.Template) error {
	data, err := json.MarshalIndent(tpl, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding template: %w", err)
	}
	_, err = t.Store.Put(ctx, artifacts.TemplateKey(tpl.Name), "application/json", data)
	return err
}

func (t *TemplateStore) LoadTemplate(ctx context.Context, name string) (*drafting.Template, error) {
	data, err := t.Store.Get(ctx, artifacts.TemplateKey(name))
	if errors.Is(err, artifacts.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", name, drafting.ErrTemplateNotFound)
	}
	if err != nil {
		return nil, err
	}
	var tpl drafting.Template
	if err := json.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("decoding template %s: %w", name, err)
	}
	if tpl.Name == "" {
		tpl.Name = name
	}
	return &tpl, nil
}
