// Package logfields holds the canonical slog attribute names used across the
// prerender pipeline so log lines stay greppable.
package logfields

import (
	"log/slog"
	"time"
)

const (
	KeyRoute      = "route"
	KeyStage      = "stage"
	KeyPath       = "path"
	KeyCount      = "count"
	KeyURL        = "url"
	KeyStatus     = "status"
	KeyDurationMS = "duration_ms"
	KeyBuildID    = "build_id"
	KeyError      = "error"
)

func Route(r string) slog.Attr  { return slog.String(KeyRoute, r) }
func Stage(s string) slog.Attr  { return slog.String(KeyStage, s) }
func Path(p string) slog.Attr   { return slog.String(KeyPath, p) }
func Count(n int) slog.Attr     { return slog.Int(KeyCount, n) }
func URL(u string) slog.Attr    { return slog.String(KeyURL, u) }
func Status(code int) slog.Attr { return slog.Int(KeyStatus, code) }
func BuildID(id string) slog.Attr {
	return slog.String(KeyBuildID, id)
}

// Duration reports d in fractional milliseconds.
func Duration(d time.Duration) slog.Attr {
	return slog.Float64(KeyDurationMS, float64(d.Microseconds())/1000)
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
