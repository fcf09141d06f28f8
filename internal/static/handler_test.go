package static

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/codeview"
	"github.com/inamate/pathguide/internal/document"
	"github.com/inamate/pathguide/internal/sketch"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	hl := codeview.NewChroma(codeview.DefaultLanguage, "github")
	h, err := NewHandler(func() (*app.App, error) {
		page, err := document.Default()
		if err != nil {
			return nil, err
		}
		return app.FromManifest(page, sketch.Config{Highlighter: hl})
	}, hl, nil)
	require.NoError(t, err)
	return h
}

func get(handler http.HandlerFunc, path, name string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if name != "" {
		req = mux.SetURLVars(req, map[string]string{"name": name})
	}
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestPage(t *testing.T) {
	h := newHandler(t)
	rec := get(h.Page, "/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "<title>Path2d</title>")
	assert.Contains(t, body, `href="#arcTo"`)
	assert.Contains(t, body, `<section id="curveTo"`)
	assert.Contains(t, body, `class="chroma"`)
	assert.Contains(t, body, "/static/app.js")
}

func TestList(t *testing.T) {
	h := newHandler(t)
	rec := get(h.List, "/api/sketches", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out []SketchInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 8)
	assert.Equal(t, "moveTo", out[0].Name)
	assert.Equal(t, "#moveTo", out[0].Href)

	var arc SketchInfo
	for _, s := range out {
		if s.Name == "arc" {
			arc = s
		}
	}
	require.NotEmpty(t, arc.Settings)
	assert.Equal(t, "radius", arc.Settings[0].Name)
}

func TestCode(t *testing.T) {
	h := newHandler(t)

	rec := get(h.Code, "/api/sketches/lineTo/code", "lineTo")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp CodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "lineTo", resp.Name)
	assert.Contains(t, resp.Code, "Path2d path;")
	assert.Contains(t, resp.Code, "path.lineTo( vec2( 270.0, 140.0 ) );")
	assert.Contains(t, resp.HTML, "<pre")

	rec = get(h.Code, "/api/sketches/spiral/code", "spiral")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExport(t *testing.T) {
	h := newHandler(t)
	rec := get(h.Export, "/api/sketches/close/export.cpp", "close")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="close.cpp"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "path.close();")
	assert.Contains(t, rec.Body.String(), "gl::draw( path );\n")
}

func TestSnapshot(t *testing.T) {
	h := newHandler(t)
	rec := get(h.Snapshot, "/api/sketches/quadTo/snapshot.png", "quadTo")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	img, err := png.Decode(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestAssets(t *testing.T) {
	h := newHandler(t)

	for _, name := range []string{"app.js", "style.css"} {
		rec := httptest.NewRecorder()
		h.Assets().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/"+name, nil))
		assert.Equal(t, http.StatusOK, rec.Code, name)
		assert.NotEmpty(t, rec.Header().Get("Cache-Control"), name)
	}

	rec := httptest.NewRecorder()
	h.Assets().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/missing.js", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
