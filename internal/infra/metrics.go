package infra

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
)

// Metrics owns a private Prometheus registry with process, Go runtime, HTTP
// and background-job collectors.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	jobs     *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de solicitudes HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duracion de las solicitudes HTTP.",
			Buckets: []float64{0.005, 0.025, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method", "route"}),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "jobs_processed_total",
			Help: "Trabajos en segundo plano procesados por cola y resultado.",
		}, []string{"queue", "result"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.latency, m.jobs,
	)
	return m
}

// ObserveRequest records one finished HTTP request. route is the gin route
// template, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, took time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.latency.WithLabelValues(method, route).Observe(took.Seconds())
}

// ObserveJob records one processed background job. result is ok|dlq|invalid.
func (m *Metrics) ObserveJob(queue, result string) {
	m.jobs.WithLabelValues(queue, result).Inc()
}

// Handler serves the text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ── JSON summary ──────────────────────────────────────────────────────────────

type MetricValue struct {
	Labels map[string]string `json:"labels"`
	Value  float64           `json:"value"`
}

type MetricFamily struct {
	Help   string        `json:"help,omitempty"`
	Type   string        `json:"type,omitempty"`
	Values []MetricValue `json:"values"`
}

// Summary flattens the registry into name → family. It reads Gather() rather
// than parsing the text exposition. The resulting series match the text
// format: histograms get their own _bucket/_sum/_count entries.
func (m *Metrics) Summary() (map[string]*MetricFamily, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	return summarize(families), nil
}

func summarize(families []*dto.MetricFamily) map[string]*MetricFamily {
	out := make(map[string]*MetricFamily, len(families))
	add := func(name string, labels map[string]string, v float64) {
		f, ok := out[name]
		if !ok {
			f = &MetricFamily{}
			out[name] = f
		}
		f.Values = append(f.Values, MetricValue{Labels: labels, Value: v})
	}

	for _, fam := range families {
		name := fam.GetName()
		out[name] = &MetricFamily{
			Help:   fam.GetHelp(),
			Type:   typeName(fam.GetType()),
			Values: []MetricValue{},
		}
		for _, metric := range fam.GetMetric() {
			labels := labelMap(metric.GetLabel())
			switch fam.GetType() {
			case dto.MetricType_COUNTER:
				add(name, labels, metric.GetCounter().GetValue())
			case dto.MetricType_GAUGE:
				add(name, labels, metric.GetGauge().GetValue())
			case dto.MetricType_UNTYPED:
				add(name, labels, metric.GetUntyped().GetValue())
			case dto.MetricType_HISTOGRAM:
				h := metric.GetHistogram()
				for _, b := range h.GetBucket() {
					add(name+"_bucket", withLabel(labels, "le", formatFloat(b.GetUpperBound())), float64(b.GetCumulativeCount()))
				}
				add(name+"_bucket", withLabel(labels, "le", "+Inf"), float64(h.GetSampleCount()))
				add(name+"_sum", labels, h.GetSampleSum())
				add(name+"_count", labels, float64(h.GetSampleCount()))
			case dto.MetricType_SUMMARY:
				s := metric.GetSummary()
				for _, q := range s.GetQuantile() {
					add(name, withLabel(labels, "quantile", formatFloat(q.GetQuantile())), q.GetValue())
				}
				add(name+"_sum", labels, s.GetSampleSum())
				add(name+"_count", labels, float64(s.GetSampleCount()))
			}
		}
	}
	return out
}

func typeName(t dto.MetricType) string {
	switch t {
	case dto.MetricType_COUNTER:
		return "counter"
	case dto.MetricType_GAUGE:
		return "gauge"
	case dto.MetricType_HISTOGRAM:
		return "histogram"
	case dto.MetricType_SUMMARY:
		return "summary"
	default:
		return "untyped"
	}
}

func labelMap(pairs []*dto.LabelPair) map[string]string {
	m := make(map[string]string, len(pairs))
	for _, p := range pairs {
		m[p.GetName()] = p.GetValue()
	}
	return m
}

func withLabel(labels map[string]string, k, v string) map[string]string {
	m := make(map[string]string, len(labels)+1)
	for lk, lv := range labels {
		m[lk] = lv
	}
	m[k] = v
	return m
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

// SortedNames is used by tests and the health page to list families in a stable order.
func SortedNames(summary map[string]*MetricFamily) []string {
	names := make([]string, 0, len(summary))
	for n := range summary {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
