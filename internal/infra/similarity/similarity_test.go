package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	a := "1. Parties\nAcme and Globex\n2. Term\nOne year"
	assert.Equal(t, 1.0, Ratio(a, a))
	assert.Equal(t, 1.0, Ratio(a, "1. Parties  \n\nAcme   and Globex\n2. Term\nOne year\n"))

	changed := "1. Parties\nAcme and Initech\n2. Term\nOne year"
	r := Ratio(a, changed)
	assert.Less(t, r, 1.0)
	assert.Greater(t, r, 0.0)

	assert.Less(t, Ratio(a, "entirely different text"), r)
	assert.Equal(t, 1.0, Ratio("", "  \n"))
}

func TestIdentical(t *testing.T) {
	assert.True(t, Identical("a  b\r\nc", "a b\nc\n"))
	assert.False(t, Identical("a b", "a c"))
	assert.Equal(t, 1.0, Scorer{}.Ratio("x", "x"))
}
