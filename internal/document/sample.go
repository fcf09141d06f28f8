package document

import (
	"bytes"
	_ "embed"
)

//go:embed default.yaml
var defaultManifest []byte

// Default returns the built-in guide page.
func Default() (*Page, error) {
	return Load(bytes.NewReader(defaultManifest))
}
