package notes

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a build failure.
type ErrorKind string

const (
	// KindDegraded is recovered inside the build and never returned by Build.
	KindDegraded ErrorKind = "degraded"
	// KindStructural covers a missing template or placeholder, a render
	// failure and unreadable data files.
	KindStructural ErrorKind = "structural"
	// KindWrite covers filesystem failures while emitting output.
	KindWrite ErrorKind = "write"
)

var (
	ErrTemplateNotFound   = errors.New("base template not found")
	ErrMissingPlaceholder = errors.New("template is missing a placeholder")
	ErrInvalidRoute       = errors.New("invalid route")
)

// BuildError is a classified failure of one build stage, optionally tied to
// the route being processed.
type BuildError struct {
	Kind  ErrorKind
	Stage string
	Route string
	Err   error
}

func (e *BuildError) Error() string {
	if e.Route != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Stage, e.Route, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s (%s): %v", e.Stage, e.Kind, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

func structural(stage, route string, err error) error {
	return &BuildError{Kind: KindStructural, Stage: stage, Route: route, Err: err}
}

func writeErr(stage, route string, err error) error {
	return &BuildError{Kind: KindWrite, Stage: stage, Route: route, Err: err}
}

// KindOf returns the kind of the first BuildError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var be *BuildError
	if errors.As(err, &be) {
		return be.Kind
	}
	return ""
}

// ExitCode maps an error returned by the CLI to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ce *ConfigError
	if errors.As(err, &ce) {
		return 7 // Configuration error
	}
	switch KindOf(err) {
	case KindStructural:
		return 11 // Build error
	case KindWrite:
		return 12 // Filesystem error
	}
	return 1
}
