package codeview

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCode string

func (s staticCode) Code() string { return string(s) }

type failing struct{}

func (failing) Highlight(string) (string, error) { return "", errors.New("boom") }
func (failing) CSS() (string, error)             { return "", nil }

func TestModuleText(t *testing.T) {
	m := New(nil, nil)
	m.Update(staticCode("path.moveTo( vec2( 0.0, 0.0 ) );\n"), staticCode("gl::drawStrokedRect( path.calcBoundingBox() );"))
	m.Prepend("Path2d path;")
	m.Inject("gl::draw( path );")

	assert.Equal(t,
		"Path2d path;\n"+
			"path.moveTo( vec2( 0.0, 0.0 ) );\n"+
			"gl::drawStrokedRect( path.calcBoundingBox() );\n"+
			"gl::draw( path );\n",
		m.Text())
	assert.False(t, strings.HasSuffix(m.CopyText(), "\n"))

	// header and footer survive updates
	m.Update(staticCode("path.close();\n"))
	assert.Equal(t, "Path2d path;\npath.close();\ngl::draw( path );\n", m.Text())

	m.Clear()
	assert.Equal(t, "", m.Text())
}

func TestModulePlainHTML(t *testing.T) {
	m := New(nil, nil)
	m.Update(staticCode("a < b\n"))
	assert.Equal(t, "<pre>a &lt; b\n</pre>", m.HTML())
}

func TestModuleHighlightFallback(t *testing.T) {
	m := New(failing{}, nil)
	m.Update(staticCode("x\n"))
	assert.Equal(t, "<pre>x\n</pre>", m.HTML())
}

func TestChroma(t *testing.T) {
	hl := NewChroma(DefaultLanguage, "monokai")
	out, err := hl.Highlight("path.moveTo( vec2( 0.0, 0.0 ) );\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<pre")
	assert.Contains(t, out, "moveTo")
	assert.Contains(t, out, `class="`)

	css, err := hl.CSS()
	require.NoError(t, err)
	assert.NotEmpty(t, css)

	// unknown names still produce a usable highlighter
	out, err = NewChroma("no-such-language", "no-such-style").Highlight("x")
	require.NoError(t, err)
	assert.Contains(t, out, "x")
}
