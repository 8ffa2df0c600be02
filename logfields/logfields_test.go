package logfields

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestError_NilProducesEmptyValue(t *testing.T) {
	attr := Error(nil)
	require.Equal(t, KeyError, attr.Key)
	require.Equal(t, "", attr.Value.String())
}

func TestError_CarriesMessage(t *testing.T) {
	attr := Error(errors.New("boom"))
	require.Equal(t, "boom", attr.Value.String())
}

func TestDuration_Milliseconds(t *testing.T) {
	attr := Duration(1500 * time.Microsecond)
	require.Equal(t, KeyDurationMS, attr.Key)
	require.InDelta(t, 1.5, attr.Value.Float64(), 0.0001)
}
