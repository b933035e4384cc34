package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/agbru/sysgauge/internal/logging"
	"github.com/agbru/sysgauge/internal/sysmon"
)

func newTestLogger() logging.Logger {
	return logging.NewLogger(&bytes.Buffer{}, "test")
}

// TestNewMetrics tests the Metrics constructor.
func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}

	// Private registries allow several instances side by side.
	if NewMetrics() == nil {
		t.Fatal("second NewMetrics returned nil")
	}
}

// TestMetrics_WritePrometheus tests the Prometheus exposition.
func TestMetrics_WritePrometheus(t *testing.T) {
	m := NewMetrics()
	m.ObserveSample(sysmon.Snapshot{
		CPU:   sysmon.UtilizationSample{Value: 150.5, Label: sysmon.LabelCPU},
		RAM:   sysmon.UtilizationSample{Value: 42.1, Label: sysmon.LabelRAM},
		Cores: 8,
	})
	m.ObserveError(errors.New("boom"))

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	for _, want := range []string{
		"sysgauge_cpu_percent 150.5",
		"sysgauge_memory_percent 42.1",
		"sysgauge_cpu_cores 8",
		"sysgauge_ticks_total 1",
		"sysgauge_sample_errors_total 1",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output should contain %q", want)
		}
	}
}

// TestServer_metricsMiddleware tests the request tracking middleware.
func TestServer_metricsMiddleware(t *testing.T) {
	s := &Server{metrics: NewMetrics(), logger: newTestLogger()}

	nextCalled := false
	next := func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusTeapot)
	}

	handler := s.metricsMiddleware(next)
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !nextCalled {
		t.Error("next handler was not called")
	}

	out := httptest.NewRecorder()
	s.metrics.WritePrometheus(out, httptest.NewRequest("GET", "/metrics", http.NoBody))
	if !strings.Contains(out.Body.String(), `sysgauge_requests_total{path="/test",status="418"} 1`) {
		t.Errorf("expected request to be counted, got:\n%s", out.Body.String())
	}
	if !strings.Contains(out.Body.String(), "sysgauge_active_requests 0") {
		t.Error("expected active requests to return to 0")
	}
}

// TestServer_handleMetrics tests the /metrics endpoint handler.
func TestServer_handleMetrics(t *testing.T) {
	tests := []struct {
		method string
		want   int
	}{
		{"GET", http.StatusOK},
		{"POST", http.StatusMethodNotAllowed},
		{"PUT", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			s := &Server{metrics: NewMetrics(), logger: newTestLogger()}

			req := httptest.NewRequest(tt.method, "/metrics", http.NoBody)
			rec := httptest.NewRecorder()
			s.handleMetrics(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want == http.StatusOK && !strings.Contains(rec.Body.String(), "sysgauge_") {
				t.Error("response should contain sysgauge metrics")
			}
		})
	}
}

// TestServer_ServeUntilCancelled tests the listen and graceful shutdown cycle.
func TestServer_ServeUntilCancelled(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("cannot listen: %v", err)
	}

	s := New(ln.Addr().String(), NewMetrics(), newTestLogger())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/metrics")
	if err != nil {
		cancel()
		t.Fatalf("GET /metrics: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(body), "sysgauge_ticks_total") {
		t.Errorf("unexpected response %d:\n%s", resp.StatusCode, body)
	}
	if resp.Header.Get("X-Content-Type-Options") != "nosniff" {
		t.Error("expected security headers on /metrics")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil after cancellation", err)
		}
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
