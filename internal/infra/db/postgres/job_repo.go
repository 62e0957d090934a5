package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

type JobRepository struct{ db *sql.DB }

func NewJobRepository(db *sql.DB) *JobRepository { return &JobRepository{db: db} }

const schema = `
CREATE TABLE IF NOT EXISTS comparison_jobs (
  id                  TEXT PRIMARY KEY,
  owner               TEXT NOT NULL DEFAULT '-',
  status              TEXT NOT NULL,
  message             TEXT NOT NULL DEFAULT '',
  total_contracts     INTEGER NOT NULL DEFAULT 0,
  contracts_processed INTEGER NOT NULL DEFAULT 0,
  contract_names      TEXT[] NOT NULL DEFAULT '{}',
  extracted_names     TEXT[] NOT NULL DEFAULT '{}',
  contract_labels     TEXT[] NOT NULL DEFAULT '{}',
  differences         JSONB NOT NULL DEFAULT '[]',
  report_key          TEXT NOT NULL DEFAULT '',
  created_at          TIMESTAMPTZ NOT NULL,
  updated_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comparison_jobs_owner_created ON comparison_jobs (owner, created_at DESC);`

// EnsureSchema creates the jobs table when missing.
func (r *JobRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating comparison_jobs: %w", err)
	}
	return nil
}

// Save insert/update Job record
func (r *JobRepository) Save(ctx context.Context, j *domain.Job) error {
	const q = `
INSERT INTO comparison_jobs
(id, owner, status, message, total_contracts, contracts_processed,
 contract_names, extracted_names, contract_labels, differences, report_key, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
ON CONFLICT (id) DO UPDATE SET
 status = EXCLUDED.status,
 message = EXCLUDED.message,
 contracts_processed = EXCLUDED.contracts_processed,
 contract_names = EXCLUDED.contract_names,
 extracted_names = EXCLUDED.extracted_names,
 contract_labels = EXCLUDED.contract_labels,
 differences = EXCLUDED.differences,
 report_key = EXCLUDED.report_key,
 updated_at = EXCLUDED.updated_at;`

	diffs := j.Differences
	if diffs == nil {
		diffs = []domain.Difference{}
	}
	raw, err := json.Marshal(diffs)
	if err != nil {
		return fmt.Errorf("encoding differences of %s: %w", j.ID, err)
	}
	labels := make([]string, len(j.Labels))
	for i, l := range j.Labels {
		labels[i] = string(l)
	}
	created := j.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := j.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	_, err = r.db.ExecContext(ctx, q,
		j.ID, stringOrDash(j.Owner), stringOrDash(string(j.Status)), j.Message,
		j.TotalContracts, j.ContractsProcessed,
		pq.Array(nonNil(j.ContractNames)), pq.Array(nonNil(j.ExtractedNames)), pq.Array(labels), raw,
		j.ReportKey, created, updated,
	)
	return err
}

const selectJob = `
SELECT id, owner, status, message, total_contracts, contracts_processed,
       contract_names, extracted_names, contract_labels, differences, report_key, created_at, updated_at
FROM comparison_jobs`

type scanner interface {
	Scan(dest ...any) error
}

func scanJob(row scanner) (*domain.Job, error) {
	var j domain.Job
	var names, extracted, labels pq.StringArray
	var diffs []byte
	if err := row.Scan(
		&j.ID, &j.Owner, &j.Status, &j.Message, &j.TotalContracts, &j.ContractsProcessed,
		&names, &extracted, &labels, &diffs, &j.ReportKey, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if j.Owner == "-" {
		j.Owner = ""
	}
	j.ContractNames = []string(names)
	if len(extracted) > 0 {
		j.ExtractedNames = []string(extracted)
	}
	for _, l := range labels {
		j.Labels = append(j.Labels, domain.Label(l))
	}
	if len(diffs) > 0 {
		if err := json.Unmarshal(diffs, &j.Differences); err != nil {
			return nil, fmt.Errorf("decoding differences of %s: %w", j.ID, err)
		}
	}
	return &j, nil
}

func (r *JobRepository) Get(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, selectJob+` WHERE id=$1 LIMIT 1;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return j, err
}

func (r *JobRepository) Delete(ctx context.Context, id domain.JobID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comparison_jobs WHERE id=$1;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return nil
}

// Latest jobs of owner, newest first
func (r *JobRepository) Latest(ctx context.Context, owner string, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, selectJob+` WHERE owner=$1 ORDER BY created_at DESC LIMIT $2;`, stringOrDash(owner), limit)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var out []*domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		out = append(out, j)
	}
	return out, rows.Err()
}

func (r *JobRepository) Check(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
