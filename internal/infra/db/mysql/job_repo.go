package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

type JobRepository struct {
	db *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{db: db}
}

const schema = `
CREATE TABLE IF NOT EXISTS comparison_jobs (
  id                  VARCHAR(64)  NOT NULL PRIMARY KEY,
  owner               VARCHAR(128) NOT NULL DEFAULT '-',
  status              VARCHAR(16)  NOT NULL,
  message             TEXT         NOT NULL,
  total_contracts     INT          NOT NULL DEFAULT 0,
  contracts_processed INT          NOT NULL DEFAULT 0,
  contract_names      JSON         NOT NULL,
  extracted_names     JSON         NOT NULL,
  contract_labels     JSON         NOT NULL,
  differences         JSON         NOT NULL,
  report_key          VARCHAR(255) NOT NULL DEFAULT '',
  created_at          DATETIME(3)  NOT NULL,
  updated_at          DATETIME(3)  NOT NULL,
  KEY idx_jobs_owner_created (owner, created_at)
)`

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
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 status=VALUES(status), message=VALUES(message),
 contracts_processed=VALUES(contracts_processed),
 contract_names=VALUES(contract_names), extracted_names=VALUES(extracted_names),
 contract_labels=VALUES(contract_labels),
 differences=VALUES(differences), report_key=VALUES(report_key),
 updated_at=VALUES(updated_at);
`
	cols, err := encodeJob(j)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", j.ID, err)
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
		cols.names, cols.extracted, cols.labels, cols.diffs, j.ReportKey, created, updated,
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
	var cols jobColumns
	if err := row.Scan(
		&j.ID, &j.Owner, &j.Status, &j.Message, &j.TotalContracts, &j.ContractsProcessed,
		&cols.names, &cols.extracted, &cols.labels, &cols.diffs, &j.ReportKey, &j.CreatedAt, &j.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if j.Owner == "-" {
		j.Owner = ""
	}
	if err := decodeJob(&j, cols); err != nil {
		return nil, fmt.Errorf("decoding job %s: %w", j.ID, err)
	}
	return &j, nil
}

func (r *JobRepository) Get(ctx context.Context, id domain.JobID) (*domain.Job, error) {
	j, err := scanJob(r.db.QueryRowContext(ctx, selectJob+` WHERE id=? LIMIT 1;`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return j, err
}

func (r *JobRepository) Delete(ctx context.Context, id domain.JobID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comparison_jobs WHERE id=?;`, id)
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
	rows, err := r.db.QueryContext(ctx, selectJob+` WHERE owner=? ORDER BY created_at DESC LIMIT ?;`, stringOrDash(owner), limit)
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

// Check implements middleware.HealthChecker
func (r *JobRepository) Check(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
