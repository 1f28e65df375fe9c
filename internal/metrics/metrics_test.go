package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestObservePickAndEvent(t *testing.T) {
	m := New("test")
	m.ObservePick("served")
	m.ObservePick("served")
	m.ObserveEvent("imp", "dedup")

	if got := counterValue(t, m.Picks.WithLabelValues("served")); got != 2 {
		t.Fatalf("picks served want 2 got %v", got)
	}
	if got := counterValue(t, m.Events.WithLabelValues("imp", "dedup")); got != 1 {
		t.Fatalf("events imp/dedup want 1 got %v", got)
	}
}

func counterValue(t *testing.T, counter interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("read counter failed: %v", err)
	}
	return metric.GetCounter().GetValue()
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObservePick("served")
	m.ObserveEvent("click", "counted")
	m.ObservePostView("counted")
	m.ObservePrune("imp", 3)
}

func TestNewTwiceDoesNotPanic(t *testing.T) {
	New("dup")
	New("dup")
}

func TestHandlerExposesCounters(t *testing.T) {
	m := New("np")
	m.ObserveEvent("click", "counted")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status want 200 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `np_ads_events_total{result="counted",type="click"} 1`) {
		t.Fatalf("metrics body missing counter: %s", rec.Body.String())
	}
}
