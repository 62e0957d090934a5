// Package memory keeps comparison jobs in process memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

type JobRepository struct {
	mu   sync.RWMutex
	jobs map[domain.JobID]*domain.Job
}

func NewJobRepository() *JobRepository {
	return &JobRepository{jobs: make(map[domain.JobID]*domain.Job)}
}

// Save stores a copy so callers can keep mutating their job.
func (r *JobRepository) Save(_ context.Context, j *domain.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs[j.ID] = clone(j)
	return nil
}

func (r *JobRepository) Get(_ context.Context, id domain.JobID) (*domain.Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return clone(j), nil
}

func (r *JobRepository) Delete(_ context.Context, id domain.JobID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.jobs[id]; !ok {
		return fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	delete(r.jobs, id)
	return nil
}

func (r *JobRepository) Latest(_ context.Context, owner string, limit int) ([]*domain.Job, error) {
	if limit <= 0 {
		limit = 20
	}
	r.mu.RLock()
	out := make([]*domain.Job, 0, len(r.jobs))
	for _, j := range r.jobs {
		if j.Owner == owner {
			out = append(out, clone(j))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, k int) bool {
		if out[i].CreatedAt.Equal(out[k].CreatedAt) {
			return out[i].ID > out[k].ID
		}
		return out[i].CreatedAt.After(out[k].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *JobRepository) Check(context.Context) error { return nil }

func clone(j *domain.Job) *domain.Job {
	c := *j
	c.ContractNames = append([]string(nil), j.ContractNames...)
	c.ExtractedNames = append([]string(nil), j.ExtractedNames...)
	c.Labels = append([]domain.Label(nil), j.Labels...)
	if j.Differences != nil {
		c.Differences = make([]domain.Difference, len(j.Differences))
		for i, d := range j.Differences {
			d.Details = append([]string(nil), d.Details...)
			c.Differences[i] = d
		}
	}
	return &c
}
