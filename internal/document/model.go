package document

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"gopkg.in/yaml.v3"
)

var ErrInvalidManifest = errors.New("invalid page manifest")

// Page describes the guide page: its title, an introduction and one
// section per sketch, in display order. Prose fields are markdown.
type Page struct {
	Title    string    `yaml:"title" json:"title"`
	Intro    string    `yaml:"intro" json:"intro"`
	Canvas   Canvas    `yaml:"canvas" json:"canvas"`
	Sections []Section `yaml:"sections" json:"sections"`
}

type Canvas struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
	// Scale zooms the examples on the canvas; 0 keeps them at their
	// natural size.
	Scale float64 `yaml:"scale" json:"scale,omitempty"`
}

type Section struct {
	Sketch string `yaml:"sketch" json:"sketch"`
	Title  string `yaml:"title" json:"title"`
	Prose  string `yaml:"prose" json:"prose"`
}

// Load decodes and validates a YAML manifest.
func Load(r io.Reader) (*Page, error) {
	var p Page
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadFile reads the manifest at path.
func LoadFile(path string) (*Page, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Validate checks that the page has sections and that every section names
// a distinct sketch.
func (p *Page) Validate() error {
	if len(p.Sections) == 0 {
		return fmt.Errorf("no sections: %w", ErrInvalidManifest)
	}
	if p.Canvas.Width < 0 || p.Canvas.Height < 0 {
		return fmt.Errorf("canvas %dx%d: %w", p.Canvas.Width, p.Canvas.Height, ErrInvalidManifest)
	}
	if p.Canvas.Scale < 0 || math.IsNaN(p.Canvas.Scale) || math.IsInf(p.Canvas.Scale, 0) {
		return fmt.Errorf("canvas scale %v: %w", p.Canvas.Scale, ErrInvalidManifest)
	}
	seen := make(map[string]bool, len(p.Sections))
	for i, s := range p.Sections {
		if s.Sketch == "" {
			return fmt.Errorf("section %d has no sketch: %w", i, ErrInvalidManifest)
		}
		if seen[s.Sketch] {
			return fmt.Errorf("sketch %q listed twice: %w", s.Sketch, ErrInvalidManifest)
		}
		seen[s.Sketch] = true
	}
	return nil
}

// Section returns the section showing the named sketch.
func (p *Page) Section(sketch string) (Section, bool) {
	for _, s := range p.Sections {
		if s.Sketch == sketch {
			return s, true
		}
	}
	return Section{}, false
}

// IntroHTML renders the introduction.
func (p *Page) IntroHTML() string {
	return RenderMarkdown(p.Intro)
}

// ProseHTML renders the section text.
func (s Section) ProseHTML() string {
	return RenderMarkdown(s.Prose)
}

// RenderMarkdown converts markdown to HTML. Inline code, fenced code and
// tables are supported; links open in a new tab. Raw HTML is dropped and
// only safe link protocols are rendered as links.
func RenderMarkdown(src string) string {
	if src == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	r := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink})
	return string(markdown.ToHTML([]byte(src), p, r))
}
