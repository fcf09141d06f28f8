// Package codeview holds the generated-code panel of a sketch: the current
// source text and its highlighted rendering.
package codeview

import (
	"log/slog"
	"strings"
)

// Coder is anything that contributes generated source.
type Coder interface {
	Code() string
}

// Module keeps the code shown for a sketch. The text is the prepended
// lines, the code of the last Update, then the injected lines. Each change
// re-renders the highlighted HTML.
type Module struct {
	hl  Highlighter
	log *slog.Logger

	header []string
	body   string
	footer []string

	html string
}

// New returns an empty module. A nil highlighter renders plain text.
func New(hl Highlighter, log *slog.Logger) *Module {
	if hl == nil {
		hl = Plain{}
	}
	if log == nil {
		log = slog.Default()
	}
	m := &Module{hl: hl, log: log}
	m.render()
	return m
}

// Update replaces the body with the code of path followed by the code of
// each extra, one after the other.
func (m *Module) Update(path Coder, extras ...Coder) {
	var b strings.Builder
	if path != nil {
		b.WriteString(path.Code())
	}
	for _, e := range extras {
		if e == nil {
			continue
		}
		line := e.Code()
		b.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			b.WriteByte('\n')
		}
	}
	m.body = b.String()
	m.render()
}

// Inject appends a line after the generated code.
func (m *Module) Inject(s string) {
	m.footer = append(m.footer, strings.TrimSuffix(s, "\n"))
	m.render()
}

// Prepend adds a line before the generated code.
func (m *Module) Prepend(s string) {
	m.header = append(m.header, strings.TrimSuffix(s, "\n"))
	m.render()
}

// Clear drops the body and every injected and prepended line.
func (m *Module) Clear() {
	m.header, m.body, m.footer = nil, "", nil
	m.render()
}

// Text returns the full source text.
func (m *Module) Text() string {
	var b strings.Builder
	for _, l := range m.header {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(m.body)
	for _, l := range m.footer {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return b.String()
}

// CopyText returns the text placed on the clipboard by the copy button.
func (m *Module) CopyText() string {
	return strings.TrimRight(m.Text(), "\n")
}

// HTML returns the highlighted rendering of Text.
func (m *Module) HTML() string {
	return m.html
}

func (m *Module) render() {
	text := m.Text()
	out, err := m.hl.Highlight(text)
	if err != nil {
		m.log.Error("highlight generated code", "error", err)
		out, _ = Plain{}.Highlight(text)
	}
	m.html = out
}
