package observability

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestMetricsPrometheusText(t *testing.T) {
	m := NewMetrics()
	m.ApiInflightInc()
	m.ObserveAPI("GET", "/api/employees/", "200", 30*time.Millisecond)
	m.ObserveAPI("GET", "/api/employees/", "200", 2*time.Second)
	m.IncRealtimeEvent("employees", "employee_created")
	m.IncRealtimeDropped("employees", "busy")
	m.SetRealtimeSessions("financials", 3)

	var buf bytes.Buffer
	if err := m.WritePrometheus(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# TYPE engparente_api_requests_total counter",
		`engparente_api_requests_total{method="GET",route="/api/employees/",status="200"} 2`,
		`engparente_api_request_duration_seconds_bucket{method="GET",route="/api/employees/",status="200",le="0.05"} 1`,
		`engparente_api_request_duration_seconds_bucket{method="GET",route="/api/employees/",status="200",le="+Inf"} 2`,
		`engparente_api_request_duration_seconds_count{method="GET",route="/api/employees/",status="200"} 2`,
		"engparente_api_inflight_requests 1",
		`engparente_realtime_events_total{group="employees",action="employee_created"} 1`,
		`engparente_realtime_dropped_total{group="employees",reason="busy"} 1`,
		`engparente_realtime_sessions{group="financials"} 3`,
		"# TYPE engparente_redis_up gauge",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}

	m.ApiInflightDec()
	buf.Reset()
	_ = m.WritePrometheus(&buf)
	if !strings.Contains(buf.String(), "engparente_api_inflight_requests 0") {
		t.Fatalf("inflight not decremented:\n%s", buf.String())
	}
}

func TestMetricsLabelEscaping(t *testing.T) {
	if got := labelString([]string{"route"}, []string{`a"b\c`}); got != `{route="a\"b\\c"}` {
		t.Fatalf("escaped: %s", got)
	}
	if got := labelString([]string{"a", "b"}, []string{"x"}); got != `{a="x",b="unknown"}` {
		t.Fatalf("missing value: %s", got)
	}
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveAPI("GET", "/", "200", time.Millisecond)
	m.IncRealtimeDropped("employees", "busy")
	m.SetRealtimeSessions("employees", 1)

	rec := httptest.NewRecorder()
	m.WriteHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil metrics endpoint: %d", rec.Code)
	}
}
