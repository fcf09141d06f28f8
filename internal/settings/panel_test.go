package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNumberValidation(t *testing.T) {
	p := New()
	assert.ErrorIs(t, p.AddNumber("r", "radius", 5, 10, 200, 1, nil), ErrOutOfRange)
	assert.ErrorIs(t, p.AddNumber("r", "radius", 50, 200, 10, 1, nil), ErrOutOfRange)
	require.NoError(t, p.AddNumber("r", "radius", 50, 10, 200, 1, nil))
	assert.ErrorIs(t, p.AddNumber("r", "radius", 50, 10, 200, 1, nil), ErrDuplicateControl)
	assert.ErrorIs(t, p.AddBool("r", "forward", true, nil), ErrDuplicateControl)
	assert.Equal(t, 1, p.Len())
}

func TestSetNumberClampsAndSnaps(t *testing.T) {
	var got []float64
	p := New()
	require.NoError(t, p.AddNumber("r", "radius", 50, 10, 200, 1, func(v float64) { got = append(got, v) }))

	tests := []struct {
		in   any
		want float64
	}{
		{42.4, 42},
		{42.6, 43},
		{5.0, 10},
		{1000, 200},
		{int64(77), 77},
	}
	for _, tt := range tests {
		v, err := p.Set("r", tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v)
	}
	assert.Equal(t, []float64{42, 43, 10, 200, 77}, got)

	n, err := p.Number("r")
	require.NoError(t, err)
	assert.Equal(t, 77.0, n)

	_, err = p.Set("r", "big")
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestSetBoolAndButton(t *testing.T) {
	var forward bool
	var clicks int
	p := New()
	require.NoError(t, p.AddBool("forward", "forward", false, func(v bool) { forward = v }))
	require.NoError(t, p.AddButton("reset", "reset", func() { clicks++ }))

	_, err := p.Set("forward", true)
	require.NoError(t, err)
	assert.True(t, forward)

	b, err := p.Bool("forward")
	require.NoError(t, err)
	assert.True(t, b)

	_, err = p.Set("forward", 1.0)
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = p.Set("reset", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, clicks)

	_, err = p.Set("missing", 1.0)
	assert.ErrorIs(t, err, ErrUnknownControl)
	_, err = p.Number("forward")
	assert.ErrorIs(t, err, ErrUnknownControl)
}

func TestControlsJSON(t *testing.T) {
	p := New()
	require.NoError(t, p.AddNumber("r", "radius", 100, 10, 200, 1, nil))
	require.NoError(t, p.AddButton("reset", "reset", nil))

	data, err := json.Marshal(p.Controls())
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"r","label":"radius","kind":"number","number":100,"min":10,"max":200,"step":1},
		{"name":"reset","label":"reset","kind":"button"}
	]`, string(data))
}

func TestSyncSkipsCallback(t *testing.T) {
	calls := 0
	p := New()
	require.NoError(t, p.AddNumber("r", "radius", 100, 10, 200, 1, func(float64) { calls++ }))

	require.NoError(t, p.Sync("r", 123.45))
	n, err := p.Number("r")
	require.NoError(t, err)
	assert.Equal(t, 123.45, n)

	require.NoError(t, p.Sync("r", 500.0))
	n, _ = p.Number("r")
	assert.Equal(t, 200.0, n)
	assert.Zero(t, calls)

	assert.ErrorIs(t, p.Sync("nope", 1.0), ErrUnknownControl)
}
