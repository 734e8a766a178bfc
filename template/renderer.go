// Package template loads named HTML mail templates and performs placeholder
// substitution. Templates are addressed by name plus a fixed suffix and read
// per render call, so disk-backed stores pick up edits without a restart.
package template

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

// Suffix is the fixed resource suffix appended to template names.
const Suffix = ".template.html"

// TextCodeTemplateNotFound identifies a missing-template error.
const TextCodeTemplateNotFound = "TEMPLATE_NOT_FOUND"

// Variables binds placeholder names to substitution values. Values are
// stringified with fmt.Sprint before replacement.
type Variables map[string]any

// Renderer resolves templates out of a single fs.FS. It keeps no cache: the
// backing store is the lone external state.
type Renderer struct {
	fsys fs.FS
}

// New builds a Renderer over the given template store.
func New(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Render loads the named template and replaces every {{KEY}} occurrence with
// the string form of its bound value. Placeholders without a matching key are
// left verbatim. A missing template is a developer error and fails loud.
func (r *Renderer) Render(name string, vars Variables) (string, error) {
	raw, err := fs.ReadFile(r.fsys, name+Suffix)
	if err != nil {
		return "", goerrors.Wrap(err, goerrors.CategoryNotFound, "template not found: "+name).
			WithTextCode(TextCodeTemplateNotFound).
			WithMetadata(map[string]any{"template": name})
	}

	out := string(raw)
	for key, val := range vars {
		out = strings.ReplaceAll(out, "{{"+key+"}}", fmt.Sprint(val))
	}

	return out, nil
}

// Exists reports whether the named template can be resolved. Diagnostics
// helper, not a correctness gate.
func (r *Renderer) Exists(name string) bool {
	_, err := fs.Stat(r.fsys, name+Suffix)
	return err == nil
}

// Available lists the template names the store can resolve, sorted.
func (r *Renderer) Available() []string {
	entries, err := fs.ReadDir(r.fsys, ".")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), Suffix) {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), Suffix))
	}

	sort.Strings(names)
	return names
}

// IsNotFound reports whether err is a missing-template error.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var richErr *goerrors.Error
	return goerrors.As(err, &richErr) && richErr.TextCode == TextCodeTemplateNotFound
}
