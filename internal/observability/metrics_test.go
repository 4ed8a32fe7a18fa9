package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsRecordAndExpose(t *testing.T) {
	m := NewMetrics()
	m.RecordEnrollment(true)
	m.RecordEnrollment(false)
	m.RecordEnrollment(false)
	m.RecordStatsFallback()
	m.RecordStatsCache("hit")
	m.ObserveAPI("GET", "/api/courses", 200, 15*time.Millisecond)

	if got := testutil.ToFloat64(m.enrollments.WithLabelValues("existing")); got != 2 {
		t.Fatalf("enrollments existing: got=%v want=2", got)
	}
	if got := testutil.ToFloat64(m.statsFallbacks); got != 1 {
		t.Fatalf("stats fallbacks: got=%v want=1", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics handler status: got=%d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"smarthustle_enrollments_total",
		`smarthustle_api_requests_total{method="GET",route="/api/courses",status="200"} 1`,
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("metrics output missing %q", want)
		}
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordEnrollment(true)
	m.RecordStatsFallback()
	m.RecordStatsCache("miss")
	m.ApiInflightInc()
	m.ApiInflightDec()
	m.ObserveAPI("GET", "/", 200, time.Millisecond)
	m.ObserveSummary("7d", time.Millisecond)
	if err := m.RegisterDB(nil, "main"); err != nil {
		t.Fatalf("RegisterDB: %v", err)
	}
}

func TestParseOTLPHeaders(t *testing.T) {
	got := ParseOTLPHeaders(" api-key = abc , broken, =x, team=core ")
	if len(got) != 2 || got["api-key"] != "abc" || got["team"] != "core" {
		t.Fatalf("ParseOTLPHeaders: got=%v", got)
	}
	if ParseOTLPHeaders("") != nil {
		t.Fatalf("ParseOTLPHeaders empty: expected nil")
	}
}
