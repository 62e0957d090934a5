package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appcmp "github.com/bryanwahyu/contractlens/internal/application/comparison"
	appdraft "github.com/bryanwahyu/contractlens/internal/application/drafting"
	domai "github.com/bryanwahyu/contractlens/internal/domain/ai"
	domain "github.com/bryanwahyu/contractlens/internal/domain/comparison"
	"github.com/bryanwahyu/contractlens/internal/domain/drafting"
	"github.com/bryanwahyu/contractlens/internal/middleware"
)

// Options wires the router to its services and cross-cutting settings.
type Options struct {
	Compare   *appcmp.Service
	Drafting  *appdraft.Service
	Extractor domain.TextExtractor
	Logger    *zap.Logger

	Checkers       map[string]middleware.HealthChecker
	APIKeys        map[string]string
	RateBurst      int
	RatePerMinute  int
	AllowedOrigins []string
	MaxUploadBytes int64
	MaxContracts   int
}

type Router struct {
	compare   *appcmp.Service
	drafting  *appdraft.Service
	extractor domain.TextExtractor
	logger    *zap.Logger
	maxUpload int64
	maxFiles  int
}

func NewRouter(opts Options) http.Handler {
	r := &Router{
		compare:   opts.Compare,
		drafting:  opts.Drafting,
		extractor: opts.Extractor,
		logger:    opts.Logger,
		maxUpload: opts.MaxUploadBytes,
		maxFiles:  opts.MaxContracts,
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	if r.maxUpload <= 0 {
		r.maxUpload = 50 << 20
	}
	if r.maxFiles <= 0 || r.maxFiles > domain.MaxContracts {
		r.maxFiles = domain.MaxContracts
	}

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	mux.Use(middleware.LoggingMiddleware(r.logger))
	mux.Use(middleware.MetricsMiddleware)
	if len(opts.APIKeys) > 0 {
		mux.Use(middleware.APIKeyAuth(opts.APIKeys))
	}
	if opts.RatePerMinute > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = opts.RatePerMinute
		}
		mux.Use(middleware.RateLimitMiddleware(burst, opts.RatePerMinute))
	}

	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, http.StatusNotFound, "Not Found")
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		middleware.WriteError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	mux.Get("/", r.handleRoot)
	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/healthz/live", middleware.LivenessHandler)
	mux.Get("/healthz/ready", middleware.ReadinessHandler(opts.Checkers))
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/compare-contracts/", r.wrap(r.handleCompare))
	mux.Get("/job-status/{id}", r.wrap(r.handleJobStatus))
	mux.Get("/jobs", r.wrap(r.handleLatest))
	mux.Get("/download-report/{id}", r.wrap(r.handleDownload))
	mux.Get("/view-report/{id}", r.wrap(r.handleView))
	mux.Get("/comparison-data/{id}", r.wrap(r.handleData))
	mux.Delete("/cleanup-job/{id}", r.wrap(r.handleCleanup))

	mux.Route("/templates", func(rt chi.Router) {
		rt.Post("/", r.wrap(r.handleTemplateExtract))
		rt.Get("/{name}/placeholders", r.wrap(r.handlePlaceholders))
		rt.Post("/{name}/generate", r.wrap(r.handleGenerate))
	})
	mux.Route("/contracts", func(rt chi.Router) {
		rt.Post("/modify", r.wrap(r.handleModify))
		rt.Post("/sections", r.wrap(r.handleSections))
		rt.Post("/style", r.wrap(r.handleStyle))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// requestError carries a status chosen by the handler itself.
type requestError struct {
	status int
	msg    string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &requestError{status: http.StatusBadRequest, msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			status := statusFor(err)
			if status >= 500 {
				r.logger.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
			}
			middleware.WriteError(w, status, detailFor(err))
		}
	}
}

func statusFor(err error) int {
	var re *requestError
	var mbe *http.MaxBytesError
	switch {
	case errors.As(err, &re):
		return re.status
	case errors.As(err, &mbe):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrReportNotFound),
		errors.Is(err, domain.ErrDataNotFound),
		errors.Is(err, drafting.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrJobNotCompleted),
		errors.Is(err, domain.ErrNotEnoughContracts),
		errors.Is(err, domain.ErrTooManyContracts),
		errors.Is(err, domain.ErrExtractionFailed),
		errors.Is(err, domain.ErrEmptyContract),
		errors.Is(err, drafting.ErrEmptyContract),
		errors.Is(err, drafting.ErrEmptyRequest),
		errors.Is(err, drafting.ErrEmptyTemplate),
		errors.Is(err, drafting.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, domai.ErrQuotaExceeded):
		return http.StatusTooManyRequests
	case errors.Is(err, domai.ErrMissingAPIKey),
		errors.Is(err, domain.ErrPDFUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// detailFor keeps the wording of the lookup errors clients already match on.
func detailFor(err error) string {
	switch {
	case errors.Is(err, domain.ErrJobNotFound):
		return "Job not found"
	case errors.Is(err, domain.ErrJobNotCompleted):
		return "Job not completed yet"
	case errors.Is(err, domain.ErrReportNotFound):
		return "Report file not found"
	case errors.Is(err, domain.ErrDataNotFound):
		return "Comparison data not found"
	case errors.Is(err, domai.ErrQuotaExceeded):
		return "ai quota exceeded"
	}
	return err.Error()
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func (r *Router) decodeJSON(w http.ResponseWriter, req *http.Request, v any) error {
	req.Body = http.MaxBytesReader(w, req.Body, r.maxUpload)
	if err := json.NewDecoder(req.Body).Decode(v); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			return err
		}
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

// GET /
func (r *Router) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Contract Comparison API",
		"version": "1.0.0",
		"time":    time.Now().UTC(),
		"endpoints": map[string]string{
			"compare_contracts": "/compare-contracts/",
			"job_status":        "/job-status/{job_id}",
			"jobs":              "/jobs",
			"download_report":   "/download-report/{job_id}",
			"view_report":       "/view-report/{job_id}",
			"comparison_data":   "/comparison-data/{job_id}",
			"cleanup_job":       "/cleanup-job/{job_id}",
			"templates":         "/templates/",
			"placeholders":      "/templates/{name}/placeholders",
			"generate":          "/templates/{name}/generate",
			"modify":            "/contracts/modify",
			"sections":          "/contracts/sections",
			"style":             "/contracts/style",
			"health":            "/health",
			"metrics":           "/metrics",
		},
	})
}
