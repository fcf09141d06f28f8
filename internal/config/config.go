package config

import (
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port           int     `envconfig:"PORT" default:"8080"`
	AllowedOrigins string  `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	CodeStyle      string  `envconfig:"CODE_STYLE" default:"github"`
	CanvasWidth    int     `envconfig:"CANVAS_WIDTH" default:"640"`
	CanvasHeight   int     `envconfig:"CANVAS_HEIGHT" default:"480"`
	HitTolerance   float64 `envconfig:"HIT_TOLERANCE" default:"8"`
	CanvasScale    float64 `envconfig:"CANVAS_SCALE" default:"1"`
	// ManifestPath points at a page manifest; empty uses the built-in page.
	ManifestPath string `envconfig:"MANIFEST_PATH"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// OriginPatterns returns the origins as websocket host patterns, with the
// scheme stripped.
func (c *Config) OriginPatterns() []string {
	origins := c.Origins()
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimPrefix(o, "https://")
		o = strings.TrimPrefix(o, "http://")
		out = append(out, o)
	}
	return out
}
