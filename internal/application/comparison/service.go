package comparison

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bryanwahyu/contractlens/internal/application"
	"github.com/bryanwahyu/contractlens/internal/domain/artifacts"
	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
)

// DefaultMaxChars caps the characters of each contract sent to the model.
const DefaultMaxChars = 30000

// Service implements the comparison use-cases.
// Service is safe for concurrent use.
type Service struct {
	Repo      domain.Repository
	Extractor domain.TextExtractor
	Comparer  domain.Comparer
	Renderer  domain.Renderer
	Store     artifacts.Store
	Clock     application.Clock
	Logger    *zap.Logger

	// optional
	Scorer  domain.Scorer
	Printer domain.Printer

	MaxChars     int
	MaxContracts int

	wg sync.WaitGroup
}

//
// ==== USE CASES ====
//

// SubmitCommand untuk trigger comparison dari upload
type SubmitCommand struct {
	Owner      string
	Uploads    []domain.Upload
	ReturnHTML bool
}

// Compare labels the documents A, B, C ... and asks the comparer for their
// differences. Identical texts skip the model and yield no differences.
func (s *Service) Compare(ctx context.Context, docs []domain.Document) (*domain.Result, error) {
	if err := s.checkCount(len(docs)); err != nil {
		return nil, err
	}

	labels := domain.Labels(len(docs))
	res := &domain.Result{Labels: labels, Names: make([]string, len(docs))}
	texts := make([]string, len(docs))
	for i, d := range docs {
		if strings.TrimSpace(d.Text) == "" {
			return nil, fmt.Errorf("contract %s (%s): %w", labels[i], d.Name, domain.ErrEmptyContract)
		}
		res.Names[i] = d.Name
		text, cut := truncate(d.Text, s.maxChars())
		if cut {
			res.Warnings = append(res.Warnings, fmt.Sprintf("Contract %s (%s) was truncated to %d characters", labels[i], d.Name, s.maxChars()))
		}
		texts[i] = text
	}

	if s.Scorer != nil {
		identical := true
		for i := 1; i < len(texts); i++ {
			r := s.Scorer.Ratio(texts[0], texts[i])
			res.Similarity = append(res.Similarity, domain.PairSimilarity{Label: labels[i], Ratio: r})
			if r < 1 {
				identical = false
			}
		}
		if identical {
			s.logger().Info("contracts are textually identical, skipping llm", zap.Int("contracts", len(docs)))
			res.Differences = []domain.Difference{}
			return res, nil
		}
	}

	diffs, err := s.Comparer.Compare(ctx, labels, texts)
	if err != nil {
		return nil, err
	}
	res.Differences = diffs
	return res, nil
}

// Submit runs a comparison job to completion within ctx.
func (s *Service) Submit(ctx context.Context, cmd SubmitCommand) (*domain.Job, error) {
	job, err := s.newJob(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return s.process(ctx, job, cmd)
}

// SubmitAsync stores a processing job and finishes it in the background,
// detached from the caller's cancellation.
func (s *Service) SubmitAsync(ctx context.Context, cmd SubmitCommand) (*domain.Job, error) {
	job, err := s.newJob(ctx, cmd)
	if err != nil {
		return nil, err
	}
	snapshot := *job

	bg := context.WithoutCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if _, err := s.process(bg, job, cmd); err != nil {
			s.logger().Error("comparison job failed", zap.String("job_id", string(job.ID)), zap.Error(err))
		}
	}()
	return &snapshot, nil
}

// Wait blocks until background jobs started by SubmitAsync have finished.
func (s *Service) Wait() { s.wg.Wait() }

func (s *Service) newJob(ctx context.Context, cmd SubmitCommand) (*domain.Job, error) {
	if err := s.checkCount(len(cmd.Uploads)); err != nil {
		return nil, err
	}
	now := s.clock().Now()
	names := make([]string, len(cmd.Uploads))
	for i, u := range cmd.Uploads {
		names[i] = u.Name
	}
	job := &domain.Job{
		ID:             domain.JobID(uuid.New().String()),
		Owner:          cmd.Owner,
		Status:         domain.StatusProcessing,
		Message:        "Starting contract comparison...",
		TotalContracts: len(cmd.Uploads),
		ContractNames:  names,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.Repo.Save(ctx, job); err != nil {
		return nil, fmt.Errorf("saving job: %w", err)
	}
	return job, nil
}

func (s *Service) process(ctx context.Context, job *domain.Job, cmd SubmitCommand) (*domain.Job, error) {
	log := s.logger().With(zap.String("job_id", string(job.ID)))
	s.progress(ctx, job, "Files uploaded, extracting text...")

	var (
		docs   []domain.Document
		failed []string
	)
	for i, ex := range s.Extractor.ExtractAll(ctx, cmd.Uploads) {
		label := domain.LabelFor(i)
		switch {
		case ex.Err != nil:
			failed = append(failed, fmt.Sprintf("Contract %s (%s): %v", label, ex.Name, ex.Err))
		case strings.TrimSpace(ex.Text) == "":
			failed = append(failed, fmt.Sprintf("Contract %s (%s)", label, ex.Name))
		default:
			docs = append(docs, domain.Document{Name: ex.Name, Text: ex.Text})
			job.ContractsProcessed = len(docs)
		}
	}

	if len(docs) < domain.MinContracts {
		msg := "Could not extract text from enough contracts. Failed: " + strings.Join(failed, ", ")
		return job, s.fail(ctx, job, msg, fmt.Errorf("%w. Failed: %s", domain.ErrExtractionFailed, strings.Join(failed, ", ")))
	}
	if len(failed) > 0 {
		s.progress(ctx, job, "Text extraction completed with warnings: "+strings.Join(failed, ", "))
	} else {
		s.progress(ctx, job, "Text extraction completed successfully")
	}

	s.progress(ctx, job, "Comparing contracts using AI...")
	res, err := s.Compare(ctx, docs)
	if err != nil {
		return job, s.fail(ctx, job, "Failed to compare contracts: "+err.Error(), fmt.Errorf("failed to compare contracts: %w", err))
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}
	job.Labels = res.Labels
	job.ExtractedNames = res.Names
	job.Differences = res.Differences

	if cmd.ReturnHTML {
		s.progress(ctx, job, "Generating HTML report...")
		key := artifacts.ReportKey(string(job.ID))
		html, err := s.Renderer.HTML(res)
		if err == nil {
			_, err = s.Store.Put(ctx, key, "text/html; charset=utf-8", html)
		}
		if err != nil {
			return job, s.fail(ctx, job, "Failed to generate HTML report: "+err.Error(), fmt.Errorf("failed to generate html report: %w", err))
		}
		job.ReportKey = key
	}

	job.Status = domain.StatusCompleted
	job.Message = "Contract comparison completed successfully"
	job.UpdatedAt = s.clock().Now()
	if err := s.Repo.Save(context.WithoutCancel(ctx), job); err != nil {
		return job, fmt.Errorf("saving job: %w", err)
	}
	log.Info("comparison completed",
		zap.Int("contracts", len(docs)),
		zap.Int("differences", len(job.Differences)))
	return job, nil
}

// progress records a status message; a failed save is logged, not fatal.
func (s *Service) progress(ctx context.Context, job *domain.Job, msg string) {
	job.Message = msg
	job.UpdatedAt = s.clock().Now()
	if err := s.Repo.Save(ctx, job); err != nil {
		s.logger().Warn("saving job progress", zap.String("job_id", string(job.ID)), zap.Error(err))
	}
}

func (s *Service) fail(ctx context.Context, job *domain.Job, msg string, cause error) error {
	job.Status = domain.StatusFailed
	job.Message = msg
	job.UpdatedAt = s.clock().Now()
	if err := s.Repo.Save(context.WithoutCancel(ctx), job); err != nil {
		s.logger().Error("saving failed job", zap.String("job_id", string(job.ID)), zap.Error(err))
	}
	return cause
}

// job loads id on behalf of owner. Jobs of other owners are reported as not found.
func (s *Service) job(ctx context.Context, owner string, id domain.JobID) (*domain.Job, error) {
	job, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if job.Owner != owner {
		return nil, fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return job, nil
}

// Status returns the stored job.
func (s *Service) Status(ctx context.Context, owner string, id domain.JobID) (*domain.Job, error) {
	return s.job(ctx, owner, id)
}

// Latest lists the newest jobs of owner.
func (s *Service) Latest(ctx context.Context, owner string, limit int) ([]*domain.Job, error) {
	return s.Repo.Latest(ctx, owner, limit)
}

// Report returns the stored HTML report of a completed job.
func (s *Service) Report(ctx context.Context, owner string, id domain.JobID) ([]byte, error) {
	job, err := s.job(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !job.Done() {
		return nil, domain.ErrJobNotCompleted
	}
	return s.storedReport(ctx, job)
}

// View is Report for browsers: unfinished jobs get the not-ready page.
func (s *Service) View(ctx context.Context, owner string, id domain.JobID) ([]byte, error) {
	job, err := s.job(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !job.Done() {
		return s.Renderer.NotReady(job)
	}
	return s.storedReport(ctx, job)
}

// ReportPDF prints the stored report of a completed job.
func (s *Service) ReportPDF(ctx context.Context, owner string, id domain.JobID) ([]byte, error) {
	if s.Printer == nil {
		return nil, domain.ErrPDFUnavailable
	}
	html, err := s.Report(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	return s.Printer.PDF(ctx, html)
}

func (s *Service) storedReport(ctx context.Context, job *domain.Job) ([]byte, error) {
	if job.ReportKey == "" {
		return nil, domain.ErrReportNotFound
	}
	html, err := s.Store.Get(ctx, job.ReportKey)
	if errors.Is(err, artifacts.ErrNotFound) {
		return nil, domain.ErrReportNotFound
	}
	return html, err
}

// Data returns the structured differences of a completed job. Names are
// those of the compared contracts, aligned with the labels.
func (s *Service) Data(ctx context.Context, owner string, id domain.JobID) (*domain.Result, error) {
	job, err := s.job(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if !job.Done() {
		return nil, domain.ErrJobNotCompleted
	}
	if job.Differences == nil {
		return nil, domain.ErrDataNotFound
	}
	names := job.ExtractedNames
	if len(names) != len(job.Labels) {
		names = nil
	}
	return &domain.Result{
		Labels:      job.Labels,
		Names:       names,
		Differences: job.Differences,
	}, nil
}

// Cleanup removes the stored report, then the job itself.
func (s *Service) Cleanup(ctx context.Context, owner string, id domain.JobID) error {
	job, err := s.job(ctx, owner, id)
	if err != nil {
		return err
	}
	if job.ReportKey != "" {
		if err := s.Store.Delete(ctx, job.ReportKey); err != nil && !errors.Is(err, artifacts.ErrNotFound) {
			s.logger().Warn("failed to remove report", zap.String("key", job.ReportKey), zap.Error(err))
		}
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) checkCount(n int) error {
	if n < domain.MinContracts {
		return domain.ErrNotEnoughContracts
	}
	if n > s.maxContracts() {
		return domain.ErrTooManyContracts
	}
	return nil
}

func (s *Service) maxChars() int {
	if s.MaxChars > 0 {
		return s.MaxChars
	}
	return DefaultMaxChars
}

func (s *Service) maxContracts() int {
	if s.MaxContracts > 0 && s.MaxContracts <= domain.MaxContracts {
		return s.MaxContracts
	}
	return domain.MaxContracts
}

func (s *Service) clock() application.Clock {
	if s.Clock == nil {
		return application.SystemClock{}
	}
	return s.Clock
}

func (s *Service) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// truncate cuts s to max runes.
func truncate(s string, max int) (string, bool) {
	n := 0
	for i := range s {
		if n == max {
			return s[:i], true
		}
		n++
	}
	return s, false
}
