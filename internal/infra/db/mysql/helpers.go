package mysql

import (
	"encoding/json"
	"strings"

	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

// stringOrDash returns "-" when the input is empty/whitespace
func stringOrDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// jobColumns holds the JSON-encoded slice columns of a job row.
type jobColumns struct {
	names, extracted, labels, diffs []byte
}

// encodeJob serialises the slice columns of a job
func encodeJob(j *domain.Job) (c jobColumns, err error) {
	if c.names, err = json.Marshal(nonNil(j.ContractNames)); err != nil {
		return
	}
	if c.extracted, err = json.Marshal(nonNil(j.ExtractedNames)); err != nil {
		return
	}
	if c.labels, err = json.Marshal(nonNil(j.Labels)); err != nil {
		return
	}
	c.diffs, err = json.Marshal(nonNil(j.Differences))
	return
}

func decodeJob(j *domain.Job, c jobColumns) error {
	for _, col := range []struct {
		raw  []byte
		into any
	}{
		{c.names, &j.ContractNames},
		{c.extracted, &j.ExtractedNames},
		{c.labels, &j.Labels},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.into); err != nil {
			return err
		}
	}
	if len(c.diffs) > 0 && string(c.diffs) != "null" {
		if err := json.Unmarshal(c.diffs, &j.Differences); err != nil {
			return err
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
