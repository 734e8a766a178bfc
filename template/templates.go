package template

import (
	"embed"
	"io/fs"
)

//go:embed data/templates
var templatesFS embed.FS

// DefaultFS returns the embedded default templates, rooted so template names
// resolve directly against it.
func DefaultFS() fs.FS {
	sub, err := fs.Sub(templatesFS, "data/templates")
	if err != nil {
		// embed paths are fixed at compile time
		panic(err)
	}
	return sub
}

// Default returns a Renderer over the embedded templates.
func Default() *Renderer {
	return New(DefaultFS())
}
