package greeting

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRoot(t *testing.T) {
	rr := httptest.NewRecorder()
	NewMux().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); body != Message {
		t.Errorf("Expected body %q, got %q", Message, body)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("Expected text/html content type, got %q", ct)
	}
}

func TestRootHead(t *testing.T) {
	rr := httptest.NewRecorder()
	NewMux().ServeHTTP(rr, httptest.NewRequest(http.MethodHead, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 for HEAD, got %d", rr.Code)
	}
}

func TestOtherRoutes(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusNotFound},
		{http.MethodGet, "/index.html", http.StatusNotFound},
		{http.MethodGet, "/a/b", http.StatusNotFound},
		{http.MethodPost, "/", http.StatusMethodNotAllowed},
		{http.MethodDelete, "/", http.StatusMethodNotAllowed},
		{http.MethodPost, "/missing", http.StatusNotFound},
	}

	mux := NewMux()
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.path, nil))
			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}
}

func TestRootOverNetwork(t *testing.T) {
	server := httptest.NewServer(NewMux())
	defer server.Close()

	resp, err := http.Get(server.URL + "/")
	if err != nil {
		t.Fatalf("GET / failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("Failed to read body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}
	if string(body) != Message {
		t.Errorf("Expected body %q, got %q", Message, string(body))
	}
}
