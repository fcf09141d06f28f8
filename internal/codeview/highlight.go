package codeview

import (
	"bytes"
	"fmt"
	"html"
	"log/slog"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultLanguage is the lexer used for generated code.
const DefaultLanguage = "cpp"

// Highlighter turns source text into HTML markup.
type Highlighter interface {
	Highlight(src string) (string, error)
	// CSS returns the stylesheet for the classes Highlight emits.
	CSS() (string, error)
}

// Chroma highlights with a chroma lexer and the class-based HTML formatter.
type Chroma struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChroma returns a highlighter for language using the named chroma
// style. Unknown styles fall back to chroma's default.
func NewChroma(language, style string) *Chroma {
	lexer := lexers.Get(language)
	if lexer == nil {
		slog.Warn("no lexer for language, using plain text", "language", language)
		lexer = lexers.Fallback
	}
	st := styles.Get(style)
	if st == styles.Fallback && style != "" && style != styles.Fallback.Name {
		slog.Warn("highlighting style not found", "style", style)
	}
	return &Chroma{
		lexer:     chroma.Coalesce(lexer),
		style:     st,
		formatter: chromahtml.New(chromahtml.WithClasses(true), chromahtml.TabWidth(4)),
	}
}

func (c *Chroma) Highlight(src string) (string, error) {
	it, err := c.lexer.Tokenise(nil, src)
	if err != nil {
		return "", fmt.Errorf("tokenise: %w", err)
	}
	var buf bytes.Buffer
	if err := c.formatter.Format(&buf, c.style, it); err != nil {
		return "", fmt.Errorf("format: %w", err)
	}
	return buf.String(), nil
}

func (c *Chroma) CSS() (string, error) {
	var buf bytes.Buffer
	if err := c.formatter.WriteCSS(&buf, c.style); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Plain escapes the text and wraps it in a pre block.
type Plain struct{}

func (Plain) Highlight(src string) (string, error) {
	return "<pre>" + html.EscapeString(src) + "</pre>", nil
}

func (Plain) CSS() (string, error) { return "", nil }
