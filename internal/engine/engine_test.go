package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/scene"
	"github.com/inamate/pathguide/internal/settings"
	"github.com/inamate/pathguide/internal/sketch"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(sketch.Config{})
	require.NoError(t, err)
	return e
}

func TestNothingShown(t *testing.T) {
	e := newEngine(t)

	assert.Equal(t, "[]", e.Render())
	assert.Equal(t, "[]", e.Settings())
	assert.Equal(t, "{}", e.Frame())
	assert.Empty(t, e.Code())
	assert.False(t, e.PointerMove(10, 10))

	assert.ErrorIs(t, e.Reset(), ErrNoSketch)
	_, err := e.Key("r")
	assert.ErrorIs(t, err, ErrNoSketch)
	assert.ErrorIs(t, e.SetSetting("radius", 10), ErrNoSketch)
}

func TestShowAndRender(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Show("curveTo"))

	var cmds []scene.DrawCommand
	require.NoError(t, json.Unmarshal([]byte(e.Render()), &cmds))
	require.NotEmpty(t, cmds)
	assert.Equal(t, "path", cmds[0].Op)
	assert.Contains(t, e.Code(), "path.curveTo(")
	assert.Contains(t, e.CodeHTML(), "curveTo")

	var links []app.Link
	require.NoError(t, json.Unmarshal([]byte(e.Links()), &links))
	for _, l := range links {
		assert.Equal(t, l.Name == "curveTo", l.Active, l.Name)
	}

	assert.ErrorIs(t, e.Show("spiral"), app.ErrUnknownSketch)
}

func TestDragAndReset(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Show("lineTo"))
	before := e.Code()

	assert.True(t, e.PointerMove(270, 140))
	assert.True(t, e.PointerDown(270, 140))
	moved, err := e.PointerDrag(300, 150)
	require.NoError(t, err)
	assert.True(t, moved)
	e.PointerUp(300, 150)
	assert.Contains(t, e.Code(), "path.lineTo( vec2( 300.0, 150.0 ) );")

	used, err := e.Key("r")
	require.NoError(t, err)
	assert.True(t, used)
	assert.Equal(t, before, e.Code())
}

func TestSettings(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Show("arcTo"))

	require.NoError(t, e.SetSetting("radius", 80.0))
	var controls []settings.Control
	require.NoError(t, json.Unmarshal([]byte(e.Settings()), &controls))
	require.NotEmpty(t, controls)
	assert.Equal(t, 80.0, controls[0].Number)
	assert.Contains(t, e.Code(), ", 80.0 );")

	assert.ErrorIs(t, e.SetSetting("nope", 1), settings.ErrUnknownControl)

	var frame Frame
	require.NoError(t, json.Unmarshal([]byte(e.Frame()), &frame))
	assert.Equal(t, "arcTo", frame.Sketch)
}

func TestFrameMatchesQueries(t *testing.T) {
	e := newEngine(t)
	require.NoError(t, e.Show("arc"))

	var frame Frame
	require.NoError(t, json.Unmarshal([]byte(e.Frame()), &frame))

	var cmds []scene.DrawCommand
	require.NoError(t, json.Unmarshal([]byte(e.Render()), &cmds))
	var controls []settings.Control
	require.NoError(t, json.Unmarshal([]byte(e.Settings()), &controls))
	var links []app.Link
	require.NoError(t, json.Unmarshal([]byte(e.Links()), &links))

	assert.Equal(t, "arc", frame.Sketch)
	assert.Equal(t, len(cmds), len(frame.Commands))
	assert.Equal(t, e.CodeHTML(), frame.HTML)
	assert.Equal(t, controls, frame.Settings)
	assert.Equal(t, links, frame.Links)
}
