package comparison

import (
	"time"
)

// JobID identifies a comparison job
type JobID string

// Status enum
type Status string

const (
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

const (
	MinContracts = 2
	MaxContracts = 10
)

// Label names a contract column in the report: A, B, C ...
type Label string

// LabelFor returns the label of the i-th contract (0 -> A).
func LabelFor(i int) Label {
	return Label(rune('A' + i))
}

// Labels returns the first n labels.
func Labels(n int) []Label {
	out := make([]Label, n)
	for i := range out {
		out[i] = LabelFor(i)
	}
	return out
}

// DetailKey is the JSON key carrying the detail for this label, e.g. contract_a_detail.
func (l Label) DetailKey() string {
	return "contract_" + string(rune(l[0]+('a'-'A'))) + "_detail"
}

// Document is a contract whose text has already been extracted.
type Document struct {
	Name string
	Text string
}

// Upload is a raw file handed to the service before extraction.
type Upload struct {
	Name string
	Data []byte
}

// PairSimilarity is the text similarity of one contract against contract A.
type PairSimilarity struct {
	Label Label   `json:"label"`
	Ratio float64 `json:"ratio"`
}

// Result is the outcome of one comparison.
type Result struct {
	Labels      []Label          `json:"contract_labels"`
	Names       []string         `json:"contract_names"`
	Differences []Difference     `json:"comparison_data"`
	Similarity  []PairSimilarity `json:"similarity,omitempty"`
	Warnings    []string         `json:"warnings,omitempty"`
}

// Job is the aggregate root tracked by the API
type Job struct {
	ID                 JobID        `json:"job_id"`
	Owner              string       `json:"owner,omitempty"`
	Status             Status       `json:"status"`
	Message            string       `json:"message"`
	TotalContracts     int          `json:"total_contracts"`
	ContractsProcessed int          `json:"contracts_processed"`
	ContractNames      []string     `json:"contract_names"`
	// ExtractedNames are the contracts that were compared, aligned with Labels.
	ExtractedNames     []string     `json:"extracted_names,omitempty"`
	Labels             []Label      `json:"contract_labels"`
	Differences        []Difference `json:"comparison_data,omitempty"`
	ReportKey          string       `json:"-"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// Done reports whether the job finished successfully.
func (j *Job) Done() bool { return j.Status == StatusCompleted }
