// Package static serves the guide page, its browser client and the
// read-only sketch endpoints.
package static

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/pathguide/internal/app"
	"github.com/inamate/pathguide/internal/codeview"
	"github.com/inamate/pathguide/internal/scene"
	"github.com/inamate/pathguide/internal/settings"
	"github.com/inamate/pathguide/internal/sketch"
)

//go:embed web
var webFS embed.FS

// SketchInfo is one entry of GET /api/sketches.
type SketchInfo struct {
	Name     string             `json:"name"`
	Title    string             `json:"title"`
	Href     string             `json:"href"`
	Settings []settings.Control `json:"settings"`
}

// CodeResponse is returned from GET /api/sketches/{name}/code.
type CodeResponse struct {
	Name string `json:"name"`
	Code string `json:"code"`
	HTML string `json:"html"`
}

// Handler serves everything except the websocket session. Every request
// builds a fresh app, so responses always show a sketch's initial state.
type Handler struct {
	newApp func() (*app.App, error)
	hl     codeview.Highlighter
	page   *template.Template
	log    *slog.Logger
}

// NewHandler creates a handler. A nil highlighter serves no code CSS.
func NewHandler(newApp func() (*app.App, error), hl codeview.Highlighter, log *slog.Logger) (*Handler, error) {
	if hl == nil {
		hl = codeview.Plain{}
	}
	if log == nil {
		log = slog.Default()
	}
	tmpl, err := template.ParseFS(webFS, "web/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Handler{newApp: newApp, hl: hl, page: tmpl, log: log}, nil
}

type pageSection struct {
	Name   string
	Title  string
	Prose  template.HTML
	Code   template.HTML
	Width  int
	Height int
}

type pageData struct {
	Title    string
	Intro    template.HTML
	CSS      template.CSS
	Links    []app.Link
	Sections []pageSection
}

// Page handles GET /.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	a, err := h.newApp()
	if err != nil {
		h.log.Error("build app", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	css, err := h.hl.CSS()
	if err != nil {
		h.log.Warn("highlight css", "error", err)
	}

	data := pageData{
		CSS:   template.CSS(css),
		Links: a.Links(),
	}
	if a.Page != nil {
		data.Title = a.Page.Title
		data.Intro = template.HTML(a.Page.IntroHTML())
	}
	for _, s := range a.Sketches() {
		sec := pageSection{
			Name:   s.Name,
			Title:  s.Title,
			Code:   template.HTML(s.Code().HTML()),
			Width:  s.Scene().Width,
			Height: s.Scene().Height,
		}
		if a.Page != nil {
			if ps, ok := a.Page.Section(s.Name); ok {
				sec.Prose = template.HTML(ps.ProseHTML())
			}
		}
		data.Sections = append(data.Sections, sec)
	}

	var buf bytes.Buffer
	if err := h.page.Execute(&buf, data); err != nil {
		h.log.Error("render page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// List handles GET /api/sketches.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	a, err := h.newApp()
	if err != nil {
		h.log.Error("build app", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	links := a.Links()
	out := make([]SketchInfo, 0, len(links))
	for _, l := range links {
		s, _ := a.Sketch(l.Name)
		out = append(out, SketchInfo{
			Name:     l.Name,
			Title:    l.Title,
			Href:     l.Href,
			Settings: s.Settings().Controls(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// Code handles GET /api/sketches/{name}/code.
func (h *Handler) Code(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, CodeResponse{
		Name: s.Name,
		Code: s.Code().Text(),
		HTML: s.Code().HTML(),
	})
}

// Snapshot handles GET /api/sketches/{name}/snapshot.png.
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := scene.EncodePNG(&buf, s.Scene()); err != nil {
		h.log.Error("encode snapshot", "error", err, "sketch", s.Name)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to render snapshot"})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(buf.Bytes())
}

// Export handles GET /api/sketches/{name}/export.cpp and downloads the
// sketch's code as a source file.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := h.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/x-c++src; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.cpp"`, s.Name))
	fmt.Fprintf(w, "%s\n", s.Code().CopyText())
}

// Assets returns an http.Handler for the embedded client files under
// /static/.
func (h *Handler) Assets() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	files := http.FileServer(http.FS(sub))
	return http.StripPrefix("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		files.ServeHTTP(w, r)
	}))
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*sketch.Sketch, bool) {
	name := mux.Vars(r)["name"]
	a, err := h.newApp()
	if err != nil {
		h.log.Error("build app", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return nil, false
	}
	s, ok := a.Sketch(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": fmt.Sprintf("unknown sketch %q", name)})
		return nil, false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
