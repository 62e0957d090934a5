package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripFences(t *testing.T) {
	cases := []struct{ in, want string }{
		{"```json\n[{\"a\":1}]\n```", `[{"a":1}]`},
		{"```json[]```", `[]`},
		{"```html\n<html></html>\n```", "<html></html>"},
		{"```\nplain\n```", "plain"},
		{"```json\n[{\"a\":1}", `[{"a":1}`},
		{"  no fences  ", "no fences"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StripFences(tc.in), "input %q", tc.in)
	}
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "a\nb\tc\nd", CleanText("a\r\nb\tc\x00\x07\rd"))
}

func TestTruncate(t *testing.T) {
	s, cut := Truncate("héllo wörld", 5)
	assert.True(t, cut)
	assert.Equal(t, "héllo", s)

	s, cut = Truncate("short", 10)
	assert.False(t, cut)
	assert.Equal(t, "short", s)

	s, cut = Truncate("exact", 5)
	assert.False(t, cut)
	assert.Equal(t, "exact", s)
}

func TestComparison_ListsEveryContract(t *testing.T) {
	p := Comparison([]string{"A", "B", "C"}, []string{"alpha text", "beta text", "gamma text"})
	for _, want := range []string{
		"3 contracts",
		`"contract_a_detail"`, `"contract_b_detail"`, `"contract_c_detail"`,
		"Contract A:\n---\nalpha text\n---",
		"Contract C:\n---\ngamma text\n---",
		"clause_category", "analysis_of_difference",
	} {
		assert.Contains(t, p, want)
	}
}

func TestStyling_DefaultsInstructions(t *testing.T) {
	p := Styling("Body", "")
	assert.Contains(t, p, "Styling Instructions:\n"+DefaultStyle)
	assert.Contains(t, p, "width: 100%;")
	assert.False(t, strings.Contains(p, "%!"), "no formatting verbs leak")
}

func TestDraftingPrompts(t *testing.T) {
	assert.Contains(t, TemplateExtraction("CONTRACT BODY"), "Input context:\nCONTRACT BODY")
	assert.Contains(t, TemplateFill("T", `{"a":"b"}`), "Here is the template:\nT")
	assert.Contains(t, Modification("C", "add a clause"), "User's Modification Request:\nadd a clause")
	assert.Contains(t, SectionSummary("C"), "CONTRACT SECTIONS SUMMARY:")
}
