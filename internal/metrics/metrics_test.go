package metrics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.RecordResponse(http.StatusOK, 100*time.Millisecond)
	c.RecordResponse(http.StatusNotFound, 200*time.Millisecond)
	c.RecordResponse(http.StatusOK, 300*time.Millisecond)

	m := c.Snapshot()

	if m.TotalRequests != 3 {
		t.Errorf("Expected 3 total requests, got %d", m.TotalRequests)
	}
	if m.StatusCounts["200"] != 2 {
		t.Errorf("Expected 2 requests with status 200, got %d", m.StatusCounts["200"])
	}
	if m.StatusCounts["404"] != 1 {
		t.Errorf("Expected 1 request with status 404, got %d", m.StatusCounts["404"])
	}
	if m.AverageResponseTime != 200.0 {
		t.Errorf("Expected average response time 200.0, got %.1f", m.AverageResponseTime)
	}
}

func TestMiddleware(t *testing.T) {
	c := NewCollector()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	handler := c.Middleware(mux)

	for _, path := range []string{"/", "/", "/nope"} {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	m := c.Snapshot()
	if m.TotalRequests != 3 {
		t.Errorf("Expected 3 total requests, got %d", m.TotalRequests)
	}
	if m.StatusCounts["200"] != 2 {
		t.Errorf("Expected 2 ok responses, got %d", m.StatusCounts["200"])
	}
	if m.StatusCounts["404"] != 1 {
		t.Errorf("Expected 1 not found response, got %d", m.StatusCounts["404"])
	}
}

func TestMetricsHandler(t *testing.T) {
	c := NewCollector()
	c.RecordResponse(http.StatusOK, 50*time.Millisecond)

	rr := httptest.NewRecorder()
	c.NewMux("").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected application/json, got %s", ct)
	}

	var m Metrics
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("Failed to decode metrics: %v", err)
	}
	if m.TotalRequests != 1 {
		t.Errorf("Expected 1 total request, got %d", m.TotalRequests)
	}
}

func TestHealthHandler(t *testing.T) {
	c := NewCollector()

	rr := httptest.NewRecorder()
	c.NewMux("/stats").ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var health map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("Failed to decode health: %v", err)
	}
	if health["status"] != "healthy" {
		t.Errorf("Expected status healthy, got %v", health["status"])
	}
}

func TestCustomPath(t *testing.T) {
	c := NewCollector()
	mux := c.NewMux("/stats")

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/stats", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200 on custom path, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 on default path, got %d", rr.Code)
	}
}
