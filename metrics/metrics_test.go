package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveStage("prerender", 150*time.Millisecond)
	pr.ObserveRoute(ResultSuccess, 3*time.Millisecond)
	pr.ObserveBuild("success", 500*time.Millisecond)
	pr.SetRoutes(4)
	pr.SetRemoteAvailable(true)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	require.True(t, names["notes_routes"])
	require.True(t, names["notes_stage_duration_seconds"])
	require.True(t, names["notes_remote_available"])
}

func TestWriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.SetRoutes(7)
	path := filepath.Join(t.TempDir(), "metrics", "notes.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "notes_routes 7")
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStage("x", time.Second)
	r.SetRoutes(1)
}
