package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestObserveAndExpose(t *testing.T) {
	m := NewHTTPMetrics()
	m.Observe("get", "/api/v1/invoices", 200, 25*time.Millisecond)
	m.Observe("GET", "/api/v1/invoices", 200, 30*time.Millisecond)
	m.Observe("POST", "/api/v1/invoices", 409, time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `http_requests_total{method="GET",route="/api/v1/invoices",status="200"} 2`) {
		t.Fatalf("missing GET counter in exposition:\n%s", body)
	}
	if !strings.Contains(body, `http_requests_total{method="POST",route="/api/v1/invoices",status="409"} 1`) {
		t.Fatalf("missing POST counter in exposition:\n%s", body)
	}
}

func TestMiddlewareRecordsStatus(t *testing.T) {
	m := NewHTTPMetrics()
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 passthrough, got %d", rec.Code)
	}

	expo := httptest.NewRecorder()
	m.Handler().ServeHTTP(expo, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(expo.Body.String(), `status="404"`) {
		t.Fatal("expected recorded 404 status label")
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/x", 200, time.Second)
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected passthrough, got %d", rec.Code)
	}
}
