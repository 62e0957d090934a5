package httpserver

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appcmp "github.com/bryanwahyu/contractlens/internal/application/comparison"
	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/middleware"
)

type jobStatus struct {
	JobID              string              `json:"job_id"`
	Status             domain.Status       `json:"status"`
	Message            string              `json:"message"`
	ReportURL          string              `json:"report_url,omitempty"`
	ContractsProcessed int                 `json:"contracts_processed"`
	TotalContracts     int                 `json:"total_contracts"`
	ComparisonData     []domain.Difference `json:"comparison_data,omitempty"`
}

func statusOf(j *domain.Job) jobStatus {
	s := jobStatus{
		JobID:              string(j.ID),
		Status:             j.Status,
		Message:            j.Message,
		ContractsProcessed: j.ContractsProcessed,
		TotalContracts:     j.TotalContracts,
	}
	if j.Done() && j.ReportKey != "" {
		s.ReportURL = "/download-report/" + string(j.ID)
	}
	return s
}

func jobID(req *http.Request) (domain.JobID, error) {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateJobID(id); err != nil {
		return "", fmt.Errorf("%s: %w", id, domain.ErrJobNotFound)
	}
	return domain.JobID(id), nil
}

// owner is the API key owner the request authenticated as, or "" when auth is off.
func owner(req *http.Request) string {
	return middleware.GetOwnerFromContext(req.Context())
}

func formBool(req *http.Request, key string, def bool) (bool, error) {
	v := req.FormValue(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, badRequest("%s must be a boolean", key)
	}
	return b, nil
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.Upload{}, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("reading upload %s: %w", fh.Filename, err)
	}
	return domain.Upload{Name: fh.Filename, Data: data}, nil
}

func (r *Router) parseMultipart(w http.ResponseWriter, req *http.Request) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return badRequest("invalid multipart form: %v", err)
	}
	return nil
}

// POST /compare-contracts/
// Form: files (2..10 PDFs), return_html, return_json, async
func (r *Router) handleCompare(w http.ResponseWriter, req *http.Request) error {
	if err := r.parseMultipart(w, req); err != nil {
		return err
	}
	files := req.MultipartForm.File["files"]
	if len(files) < domain.MinContracts {
		return badRequest("At least 2 PDF files are required for comparison.")
	}
	if len(files) > r.maxFiles {
		return badRequest("Maximum %d PDF files are supported for comparison.", r.maxFiles)
	}
	for _, fh := range files {
		if err := middleware.ValidatePDFFilename(fh.Filename); err != nil {
			return badRequest("%s", err.Error())
		}
	}

	returnHTML, err := formBool(req, "return_html", true)
	if err != nil {
		return err
	}
	returnJSON, err := formBool(req, "return_json", false)
	if err != nil {
		return err
	}
	async, err := formBool(req, "async", false)
	if err != nil {
		return err
	}

	uploads := make([]domain.Upload, 0, len(files))
	for _, fh := range files {
		u, err := readUpload(fh)
		if err != nil {
			return err
		}
		uploads = append(uploads, u)
	}

	cmd := appcmp.SubmitCommand{
		Owner:      owner(req),
		Uploads:    uploads,
		ReturnHTML: returnHTML,
	}
	middleware.IncrementComparisons()

	if async {
		job, err := r.compare.SubmitAsync(req.Context(), cmd)
		if err != nil {
			middleware.IncrementCompareFailed()
			return err
		}
		return writeJSON(w, http.StatusAccepted, statusOf(job))
	}

	middleware.IncrementRunning()
	job, err := r.compare.Submit(req.Context(), cmd)
	middleware.DecrementRunning()
	if err != nil {
		middleware.IncrementCompareFailed()
		return err
	}

	resp := statusOf(job)
	if returnJSON {
		resp.ComparisonData = job.Differences
	}
	return writeJSON(w, http.StatusOK, resp)
}

// GET /job-status/{id}
func (r *Router) handleJobStatus(w http.ResponseWriter, req *http.Request) error {
	id, err := jobID(req)
	if err != nil {
		return err
	}
	job, err := r.compare.Status(req.Context(), owner(req), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, statusOf(job))
}

// GET /jobs?limit=
func (r *Router) handleLatest(w http.ResponseWriter, req *http.Request) error {
	limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
	jobs, err := r.compare.Latest(req.Context(), owner(req), middleware.ValidateLimit(limit))
	if err != nil {
		return err
	}
	out := make([]jobStatus, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, statusOf(j))
	}
	return writeJSON(w, http.StatusOK, out)
}

// GET /download-report/{id}?format=pdf
func (r *Router) handleDownload(w http.ResponseWriter, req *http.Request) error {
	id, err := jobID(req)
	if err != nil {
		return err
	}

	if req.URL.Query().Get("format") == "pdf" {
		data, err := r.compare.ReportPDF(req.Context(), owner(req), id)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="contract_comparison_report_%s.pdf"`, id))
		_, err = w.Write(data)
		return err
	}

	data, err := r.compare.Report(req.Context(), owner(req), id)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="contract_comparison_report_%s.html"`, id))
	_, err = w.Write(data)
	return err
}

// GET /view-report/{id}
func (r *Router) handleView(w http.ResponseWriter, req *http.Request) error {
	id, err := jobID(req)
	if err != nil {
		return err
	}
	data, err := r.compare.View(req.Context(), owner(req), id)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = w.Write(data)
	return err
}

// GET /comparison-data/{id}
func (r *Router) handleData(w http.ResponseWriter, req *http.Request) error {
	id, err := jobID(req)
	if err != nil {
		return err
	}
	res, err := r.compare.Data(req.Context(), owner(req), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"job_id":            id,
		"contract_labels":   res.Labels,
		"contract_names":    res.Names,
		"comparison_data":   res.Differences,
		"total_differences": len(res.Differences),
	})
}

// DELETE /cleanup-job/{id}
func (r *Router) handleCleanup(w http.ResponseWriter, req *http.Request) error {
	id, err := jobID(req)
	if err != nil {
		return err
	}
	if err := r.compare.Cleanup(req.Context(), owner(req), id); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Job %s cleaned up successfully", id),
	})
}
