package mysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

func TestStringOrDash(t *testing.T) {
	assert.Equal(t, "-", stringOrDash("  "))
	assert.Equal(t, "acme", stringOrDash("acme"))
}

func TestEncodeDecodeJob(t *testing.T) {
	in := &domain.Job{
		ContractNames:  []string{"a.pdf", "b.pdf", "c.pdf"},
		ExtractedNames: []string{"a.pdf", "c.pdf"},
		Labels:         []domain.Label{"A", "B"},
		Differences: []domain.Difference{
			{Category: "Term", Details: []string{"1y", "2y"}, Analysis: "longer"},
		},
	}
	cols, err := encodeJob(in)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"clause_category":"Term","contract_a_detail":"1y","contract_b_detail":"2y","analysis_of_difference":"longer"}]`, string(cols.diffs))

	var out domain.Job
	require.NoError(t, decodeJob(&out, cols))
	assert.Equal(t, in.ContractNames, out.ContractNames)
	assert.Equal(t, in.ExtractedNames, out.ExtractedNames)
	assert.Equal(t, in.Labels, out.Labels)
	assert.Equal(t, in.Differences, out.Differences)
}

func TestEncodeJob_EmptySlices(t *testing.T) {
	cols, err := encodeJob(&domain.Job{})
	require.NoError(t, err)
	assert.Equal(t, "[]", string(cols.names))
	assert.Equal(t, "[]", string(cols.extracted))
	assert.Equal(t, "[]", string(cols.labels))
	assert.Equal(t, "[]", string(cols.diffs))
}
