package comparison

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// NotAvailable fills detail and analysis cells the model left out.
const NotAvailable = "N/A"

const (
	keyCategory = "clause_category"
	keyAnalysis = "analysis_of_difference"
)

// Difference is one row of the report: a clause category, one detail per
// contract (aligned with the labels) and the analysis of the difference.
//
// On the wire the details are flattened into contract_a_detail,
// contract_b_detail, ... keys.
type Difference struct {
	Category string
	Details  []string
	Analysis string
}

var notFoundPhrases = map[string]bool{
	"not specified": true,
	"not found":     true,
	"n/a":           true,
}

// Displayable reports whether the row carries information worth rendering.
func (d Difference) Displayable() bool {
	analysis := strings.ToLower(d.Analysis)
	if analysis == "not found in any contract." {
		return false
	}
	for _, detail := range d.Details {
		if !notFoundPhrases[strings.ToLower(detail)] {
			return true
		}
	}
	return !notFoundPhrases[analysis]
}

// AnalysisClass is the CSS class used for the analysis cell.
func (d Difference) AnalysisClass() string {
	analysis := strings.ToLower(d.Analysis)
	if strings.Contains(analysis, "no significant difference") || strings.Contains(analysis, "similar") {
		return "no-difference"
	}
	return "difference"
}

// Normalize pads or trims Details to n entries.
func (d Difference) Normalize(n int) Difference {
	details := make([]string, n)
	for i := range details {
		details[i] = NotAvailable
		if i < len(d.Details) {
			details[i] = d.Details[i]
		}
	}
	d.Details = details
	return d
}

// Visible keeps the displayable rows, preserving order.
func Visible(diffs []Difference) []Difference {
	out := make([]Difference, 0, len(diffs))
	for _, d := range diffs {
		if d.Displayable() {
			out = append(out, d)
		}
	}
	return out
}

func (d Difference) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key, value string) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		v, err := json.Marshal(value)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}
	if err := write(keyCategory, d.Category); err != nil {
		return nil, err
	}
	for i, detail := range d.Details {
		if err := write(LabelFor(i).DetailKey(), detail); err != nil {
			return nil, err
		}
	}
	if err := write(keyAnalysis, d.Analysis); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (d *Difference) UnmarshalJSON(b []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	d.Category = stringify(raw[keyCategory])
	d.Analysis = stringify(raw[keyAnalysis])

	highest := -1
	for i := 0; i < 26; i++ {
		if _, ok := raw[LabelFor(i).DetailKey()]; ok {
			highest = i
		}
	}
	d.Details = make([]string, highest+1)
	for i := range d.Details {
		d.Details[i] = stringify(raw[LabelFor(i).DetailKey()])
	}
	return nil
}

// stringify renders whatever JSON value the model produced as cell text.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return NotAvailable
	case string:
		return t
	case float64, bool:
		return fmt.Sprint(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
