package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ErrTemplateNotFound reports that a page template could not be located or
// read. Loaders wrap the underlying cause so errors.Is works against this
// sentinel.
var ErrTemplateNotFound = errors.New("render: template not found")

// Format identifies the output flavour of a page template. Format values
// double as renderer names in the registry.
type Format string

const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatUnknown  Format = ""
)

// Template is a page template: raw text with {{TOKEN}} placeholders. The
// name carries the format identity (".html" vs ".md").
type Template struct {
	Name string
	Body string
}

// NewTemplate wraps inline template text under a name.
func NewTemplate(name, body string) Template {
	return Template{Name: name, Body: body}
}

// Format detects the target format from the template name. Templates are
// commonly named like "downloads.html.template", so detection matches the
// extension anywhere in the name, not just at the end.
func (t Template) Format() Format {
	name := strings.ToLower(t.Name)
	switch {
	case strings.Contains(name, ".html"), strings.Contains(name, ".htm"):
		return FormatHTML
	case strings.Contains(name, ".markdown"), strings.Contains(name, ".md"):
		return FormatMarkdown
	default:
		return FormatUnknown
	}
}

// LoadTemplate reads a page template from disk.
func LoadTemplate(path string) (Template, error) {
	if path == "" {
		return Template{}, errors.New("render: template path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return Template{}, fmt.Errorf("render: read template %q: %w", path, err)
	}
	return Template{Name: path, Body: string(data)}, nil
}

// LoadTemplateFS reads a page template from an fs.FS.
func LoadTemplateFS(fsys fs.FS, name string) (Template, error) {
	if fsys == nil {
		return Template{}, errors.New("render: template fs is nil")
	}
	if name == "" {
		return Template{}, errors.New("render: template name is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return Template{}, fmt.Errorf("render: read template %q: %w", name, err)
	}
	return Template{Name: name, Body: string(data)}, nil
}
