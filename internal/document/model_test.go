package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	assert.Equal(t, "Path2d", p.Title)
	assert.Equal(t, 640, p.Canvas.Width)
	require.Len(t, p.Sections, 8)
	assert.Equal(t, "moveTo", p.Sections[0].Sketch)

	s, ok := p.Section("arcTo")
	require.True(t, ok)
	assert.Contains(t, s.ProseHTML(), "<code>arcTo</code>")
	assert.Contains(t, p.IntroHTML(), "<strong>r</strong>")
}

func TestLoadRejects(t *testing.T) {
	tests := map[string]string{
		"no sections":   "title: x\n",
		"empty sketch":  "sections:\n  - title: a\n",
		"duplicate":     "sections:\n  - sketch: a\n  - sketch: a\n",
		"unknown field": "sections:\n  - sketch: a\n    colour: red\n",
		"bad canvas":    "canvas:\n  width: -1\nsections:\n  - sketch: a\n",
		"bad scale":     "canvas:\n  scale: -2\nsections:\n  - sketch: a\n",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			assert.Error(t, err)
		})
	}

	_, err := Load(strings.NewReader("sections:\n  - sketch: a\n  - sketch: a\n"))
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Mine\nsections:\n  - sketch: lineTo\n    prose: \"[docs](https://example.com)\"\n"), 0o644))

	p, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Mine", p.Title)
	assert.Contains(t, p.Sections[0].ProseHTML(), `target="_blank"`)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRenderMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	src := "Drag the `lineTo` point.<script>alert(1)</script>\n\n" +
		"<div onclick=\"steal()\">hi</div>\n\n" +
		"[docs](javascript:alert(2)) and [cinder](https://libcinder.org)\n"
	out := RenderMarkdown(src)

	assert.Contains(t, out, "<code>lineTo</code>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "onclick")
	assert.NotContains(t, out, `href="javascript:`)
	assert.Contains(t, out, `href="https://libcinder.org"`)
}

func TestProseHTMLInPage(t *testing.T) {
	page, err := Load(strings.NewReader("intro: \"<iframe src=x></iframe>\\n\\n**hello**\"\nsections:\n  - sketch: lineTo\n    prose: \"<img src=x onerror=boom>\"\n"))
	require.NoError(t, err)
	assert.NotContains(t, page.IntroHTML(), "<iframe")
	assert.Contains(t, page.IntroHTML(), "<strong>hello</strong>")
	sec, ok := page.Section("lineTo")
	require.True(t, ok)
	assert.NotContains(t, sec.ProseHTML(), "onerror")
}
