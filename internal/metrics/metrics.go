package metrics

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics is a point-in-time snapshot of request statistics
type Metrics struct {
	TotalRequests       uint64            `json:"total_requests"`
	StatusCounts        map[string]uint64 `json:"status_counts"`
	TotalResponseTime   uint64            `json:"total_response_time_ms"`
	AverageResponseTime float64           `json:"average_response_time_ms"`
	StartTime           time.Time         `json:"start_time"`
	Uptime              string            `json:"uptime"`
}

// Collector accumulates request statistics for the public listener
type Collector struct {
	totalRequests     uint64
	totalResponseTime uint64
	startTime         time.Time

	mu           sync.RWMutex
	statusCounts map[int]uint64
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		startTime:    time.Now(),
		statusCounts: make(map[int]uint64),
	}
}

// RecordResponse records a finished request with its status and duration
func (c *Collector) RecordResponse(status int, responseTime time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	atomic.AddUint64(&c.totalResponseTime, uint64(responseTime.Milliseconds()))

	c.mu.Lock()
	c.statusCounts[status]++
	c.mu.Unlock()
}

// Snapshot returns a copy of current metrics
func (c *Collector) Snapshot() *Metrics {
	total := atomic.LoadUint64(&c.totalRequests)
	totalTime := atomic.LoadUint64(&c.totalResponseTime)

	m := &Metrics{
		TotalRequests:     total,
		TotalResponseTime: totalTime,
		StartTime:         c.startTime,
		Uptime:            time.Since(c.startTime).String(),
		StatusCounts:      make(map[string]uint64),
	}
	if total > 0 {
		m.AverageResponseTime = float64(totalTime) / float64(total)
	}

	c.mu.RLock()
	for status, n := range c.statusCounts {
		m.StatusCounts[strconv.Itoa(status)] = n
	}
	c.mu.RUnlock()

	return m
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.status == 0 {
		sw.status = code
	}
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if sw.status == 0 {
		sw.status = http.StatusOK
	}
	return sw.ResponseWriter.Write(b)
}

// Middleware records every request passing through next
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		c.RecordResponse(status, time.Since(start))
	})
}

// MetricsHandler returns an HTTP handler for the metrics endpoint
func (c *Collector) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, c.Snapshot())
	}
}

// HealthHandler returns an HTTP handler for the health endpoint
func (c *Collector) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := c.Snapshot()
		writeJSON(w, map[string]interface{}{
			"status":         "healthy",
			"uptime":         m.Uptime,
			"total_requests": m.TotalRequests,
		})
	}
}

// NewMux routes the metrics and health endpoints.
func (c *Collector) NewMux(path string) *http.ServeMux {
	if path == "" {
		path = "/metrics"
	} else if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+path, c.MetricsHandler())
	mux.HandleFunc("GET /health", c.HealthHandler())
	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
