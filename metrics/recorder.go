// Package metrics records build observations. Components take a Recorder and
// default to NoopRecorder, so collection is enabled by swapping in
// PrometheusRecorder without touching call sites.
package metrics

import "time"

// ResultLabel enumerates route outcomes for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
)

// Recorder defines observability hooks for a build.
type Recorder interface {
	ObserveStage(stage string, d time.Duration)
	ObserveRoute(result ResultLabel, d time.Duration)
	ObserveBuild(outcome string, d time.Duration) // outcome: success|failed
	SetRoutes(n int)
	SetRemoteAvailable(ok bool)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStage(string, time.Duration)      {}
func (NoopRecorder) ObserveRoute(ResultLabel, time.Duration) {}
func (NoopRecorder) ObserveBuild(string, time.Duration)      {}
func (NoopRecorder) SetRoutes(int)                           {}
func (NoopRecorder) SetRemoteAvailable(bool)                 {}
