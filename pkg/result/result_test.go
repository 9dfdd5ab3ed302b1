package result_test

import (
	"errors"
	"testing"

	"github.com/cooptask/cooptask/pkg/result"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_Ok(t *testing.T) {
	t.Parallel()

	r := result.Ok("value")
	require.True(t, r.IsOk())
	require.False(t, r.IsErr())
	assert.Equal(t, "value", r.Unwrap())

	value, err := r.Get()
	require.NoError(t, err)
	assert.Equal(t, "value", value)
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	r := result.Err[string](boom)
	require.True(t, r.IsErr())
	require.False(t, r.IsOk())
	assert.ErrorIs(t, r.UnwrapErr(), boom)

	_, err := r.Get()
	assert.ErrorIs(t, err, boom)
}

func TestResult_UnwrapPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		result.Err[int](errors.New("boom")).Unwrap()
	})
	assert.Panics(t, func() {
		result.Ok(1).UnwrapErr()
	})
}
