package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "notes"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	reg             *prom.Registry
	stageDuration   *prom.HistogramVec
	routeDuration   *prom.HistogramVec
	buildDuration   prom.Histogram
	buildOutcome    *prom.CounterVec
	routes          prom.Gauge
	remoteAvailable prom.Gauge
}

// NewPrometheusRecorder constructs the build metrics and registers them on
// reg. A nil reg gets a fresh private registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		reg: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		routeDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "route_render_duration_seconds",
			Help:      "Render, template and write time per route",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"result"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		routes: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "routes",
			Help:      "Routes enumerated by the last build",
		}),
		remoteAvailable: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "remote_available",
			Help:      "1 when the repository statistics fetch succeeded",
		}),
	}
	reg.MustRegister(pr.stageDuration, pr.routeDuration, pr.buildDuration, pr.buildOutcome, pr.routes, pr.remoteAvailable)
	return pr
}

func (p *PrometheusRecorder) ObserveStage(stage string, d time.Duration) {
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRoute(result ResultLabel, d time.Duration) {
	p.routeDuration.WithLabelValues(string(result)).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuild(outcome string, d time.Duration) {
	p.buildDuration.Observe(d.Seconds())
	p.buildOutcome.WithLabelValues(outcome).Inc()
}

func (p *PrometheusRecorder) SetRoutes(n int) {
	p.routes.Set(float64(n))
}

func (p *PrometheusRecorder) SetRemoteAvailable(ok bool) {
	if ok {
		p.remoteAvailable.Set(1)
		return
	}
	p.remoteAvailable.Set(0)
}

// Registry returns the registry the metrics are registered on.
func (p *PrometheusRecorder) Registry() *prom.Registry {
	return p.reg
}

// WriteTextfile writes the registry in the text exposition format, for the
// node exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("metrics: create dir: %w", err)
	}
	if err := prom.WriteToTextfile(path, p.reg); err != nil {
		return fmt.Errorf("metrics: write textfile: %w", err)
	}
	return nil
}
