package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the counters shared by report delivery and the scheduler.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry        *prometheus.Registry
	ReportsRendered *prometheus.CounterVec
	Deliveries      *prometheus.CounterVec
	AutoReportTicks *prometheus.CounterVec
	LLMRequests     *prometheus.CounterVec
	LastAutoReport  prometheus.Gauge
}

func New() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)
	return &Recorder{
		registry: registry,
		ReportsRendered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reflexum_reports_rendered_total",
			Help: "Reports rendered by kind (period, note, digest)",
		}, []string{"kind"}),
		Deliveries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reflexum_deliveries_total",
			Help: "Outbound messages by kind and result",
		}, []string{"kind", "result"}),
		AutoReportTicks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reflexum_auto_report_ticks_total",
			Help: "Auto-report evaluations by outcome",
		}, []string{"outcome"}),
		LLMRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "reflexum_llm_requests_total",
			Help: "LLM completions by purpose and result",
		}, []string{"purpose", "result"}),
		LastAutoReport: factory.NewGauge(prometheus.GaugeOpts{
			Name: "reflexum_last_auto_report_timestamp_seconds",
			Help: "Unix time of the last successful auto-report",
		}),
	}
}

func (r *Recorder) Rendered(kind string) {
	if r == nil {
		return
	}
	r.ReportsRendered.WithLabelValues(kind).Inc()
}

func (r *Recorder) Delivered(kind string, err error) {
	if r == nil {
		return
	}
	r.Deliveries.WithLabelValues(kind, result(err)).Inc()
}

func (r *Recorder) Tick(outcome string) {
	if r == nil {
		return
	}
	r.AutoReportTicks.WithLabelValues(outcome).Inc()
}

func (r *Recorder) LLM(purpose string, err error) {
	if r == nil {
		return
	}
	r.LLMRequests.WithLabelValues(purpose, result(err)).Inc()
}

func (r *Recorder) AutoReportSent(unix float64) {
	if r == nil {
		return
	}
	r.LastAutoReport.Set(unix)
}

func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
