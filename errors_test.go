package notes

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"structural", structural(stageResolveTemplate, "", ErrTemplateNotFound), 11},
		{"write", writeErr(stagePrerender, "/blog", errors.New("disk full")), 12},
		{"wrapped write", fmt.Errorf("build: %w", writeErr(stagePrerender, "/", errors.New("x"))), 12},
		{"config", &ConfigError{Path: "notes.yaml", Err: errors.New("bad yaml")}, 7},
		{"other", errors.New("boom"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestBuildErrorUnwrap(t *testing.T) {
	err := structural(stageResolveTemplate, "", ErrTemplateNotFound)
	require.ErrorIs(t, err, ErrTemplateNotFound)
	require.Equal(t, KindStructural, KindOf(err))
	require.Contains(t, err.Error(), "resolve_template")

	err = writeErr(stagePrerender, "/blog", errors.New("denied"))
	require.Equal(t, "prerender /blog (write): denied", err.Error())
}
