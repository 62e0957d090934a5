package drafting

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Placeholder describes one replaceable field of a template.
type Placeholder struct {
	Description   string `json:"description"`
	OriginalValue string `json:"original_value,omitempty"`
	Value         string `json:"value,omitempty"`
}

// UnmarshalJSON accepts both the object form and a bare description string.
func (p *Placeholder) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*p = Placeholder{Description: s}
		return nil
	}
	type alias Placeholder
	var a alias
	if err := json.Unmarshal(b, &a); err != nil {
		return fmt.Errorf("decoding placeholder: %w", err)
	}
	*p = Placeholder(a)
	return nil
}

// Template is a contract body in which instance data was replaced by named placeholders.
type Template struct {
	Name         string                 `json:"name,omitempty"`
	Body         string                 `json:"Template"`
	Placeholders map[string]Placeholder `json:"Placeholders"`
}

// Names returns the placeholder names, sorted.
func (t *Template) Names() []string {
	names := make([]string, 0, len(t.Placeholders))
	for n := range t.Placeholders {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks the template carries a body.
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Body) == "" {
		return ErrEmptyTemplate
	}
	return nil
}

// Fill substitutes every placeholder in the body. A non-empty entry in values
// wins, then the placeholder's Value, then its OriginalValue.
func (t *Template) Fill(values map[string]string) string {
	names := t.Names()
	// longest first so Party_Name never eats the prefix of Party_Name_2
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })

	out := t.Body
	for _, name := range names {
		out = strings.ReplaceAll(out, "{"+name+"}", t.resolve(name, values))
	}
	for _, name := range names {
		out = strings.ReplaceAll(out, name, t.resolve(name, values))
	}
	return out
}

func (t *Template) resolve(name string, values map[string]string) string {
	if v := values[name]; v != "" {
		return v
	}
	p := t.Placeholders[name]
	if p.Value != "" {
		return p.Value
	}
	return p.OriginalValue
}
