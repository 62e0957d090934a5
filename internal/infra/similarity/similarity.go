// Package similarity scores how close two contract texts are using the
// sergi/go-diff line-mode diff.
package similarity

import (
	"strings"
	"time"

	"github.com/sergi/go-diff/diffmatchpatch"
)

func newDMP() *diffmatchpatch.DiffMatchPatch {
	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 2 * time.Second
	return dmp
}

// Ratio returns 1 for identical texts and approaches 0 as they diverge.
// Whitespace is normalised per line before diffing.
func Ratio(a, b string) float64 {
	a, b = normalize(a), normalize(b)
	if a == b {
		return 1
	}
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}

	dmp := newDMP()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)
	dist := dmp.DiffLevenshtein(diffs)

	r := 1 - float64(dist)/float64(longest)
	if r < 0 {
		return 0
	}
	return r
}

// Identical reports whether the texts only differ in whitespace.
func Identical(a, b string) bool {
	return normalize(a) == normalize(b)
}

func normalize(s string) string {
	lines := strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
	out := lines[:0]
	for _, l := range lines {
		l = strings.Join(strings.Fields(l), " ")
		if l != "" {
			out = append(out, l)
		}
	}
	return strings.Join(out, "\n")
}

// Scorer adapts Ratio to comparison.Scorer.
type Scorer struct{}

func (Scorer) Ratio(a, b string) float64 { return Ratio(a, b) }
