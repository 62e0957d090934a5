package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// counters are process-wide; the API server is the only writer.
var (
	requestsTotal      atomic.Uint64
	requestsInProgress atomic.Int64
	requestsSuccess    atomic.Uint64
	requestsFailed     atomic.Uint64

	comparisonsTotal   atomic.Uint64
	comparisonsRunning atomic.Int64
	comparisonsFailed  atomic.Uint64
	llmCalls           atomic.Uint64

	startTime = time.Now()
)

func IncrementComparisons()   { comparisonsTotal.Add(1) }
func IncrementRunning()       { comparisonsRunning.Add(1) }
func DecrementRunning()       { comparisonsRunning.Add(-1) }
func IncrementCompareFailed() { comparisonsFailed.Add(1) }

// IncrementLLMCalls counts requests sent to the language model, retries included.
func IncrementLLMCalls() { llmCalls.Add(1) }

type RequestMetrics struct {
	Total      uint64 `json:"total"`
	InProgress int64  `json:"in_progress"`
	Success    uint64 `json:"success"`
	Failed     uint64 `json:"failed"`
}

type ComparisonMetrics struct {
	Total    uint64 `json:"total"`
	Running  int64  `json:"running"`
	Failed   uint64 `json:"failed"`
	LLMCalls uint64 `json:"llm_calls"`
}

type RuntimeMetrics struct {
	Goroutines      int    `json:"goroutines"`
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
}

// MetricsSnapshot is the body of GET /metrics.
type MetricsSnapshot struct {
	Requests      RequestMetrics    `json:"requests"`
	Comparisons   ComparisonMetrics `json:"comparisons"`
	Runtime       RuntimeMetrics    `json:"runtime"`
	UptimeSeconds float64           `json:"uptime_seconds"`
}

// Snapshot reads the current counters.
func Snapshot() MetricsSnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return MetricsSnapshot{
		Requests: RequestMetrics{
			Total:      requestsTotal.Load(),
			InProgress: requestsInProgress.Load(),
			Success:    requestsSuccess.Load(),
			Failed:     requestsFailed.Load(),
		},
		Comparisons: ComparisonMetrics{
			Total:    comparisonsTotal.Load(),
			Running:  comparisonsRunning.Load(),
			Failed:   comparisonsFailed.Load(),
			LLMCalls: llmCalls.Load(),
		},
		Runtime: RuntimeMetrics{
			Goroutines:      runtime.NumGoroutine(),
			AllocBytes:      m.Alloc,
			TotalAllocBytes: m.TotalAlloc,
			SysBytes:        m.Sys,
			NumGC:           m.NumGC,
		},
		UptimeSeconds: time.Since(startTime).Seconds(),
	}
}

// MetricsMiddleware counts requests by outcome; 4xx and 5xx count as failed.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestsTotal.Add(1)
		requestsInProgress.Add(1)
		defer requestsInProgress.Add(-1)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode < 400 {
			requestsSuccess.Add(1)
		} else {
			requestsFailed.Add(1)
		}
	})
}

func MetricsHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(Snapshot())
}
