// Package htmlpage renders download-page blocks as HTML table rows and a
// version-history grid. Fragment markup lives in embedded templates so the
// Go code stays free of format strings.
package htmlpage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/barqly/release-pages/pkg/page"
	"github.com/barqly/release-pages/pkg/render"
	rendertemplate "github.com/barqly/release-pages/pkg/render/template"
	gotemplate "github.com/barqly/release-pages/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate fragment template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads fragment templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

type Renderer struct {
	templates rendertemplate.TemplateRenderer
	policy    *bluemonday.Policy
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		policy:    bluemonday.StrictPolicy(),
	}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// DownloadRow renders one <tr> block. Text fields pass through the strict
// sanitizer before injection; the URL is constructed, not user markup, and
// is escaped by the template engine.
func (r *Renderer) DownloadRow(_ context.Context, row page.DownloadRow) (string, error) {
	result, err := r.templates.RenderTemplate("templates/row.tmpl", map[string]any{
		"platform": r.sanitize(row.Platform),
		"size":     r.sanitize(row.Size),
		"filename": r.sanitize(row.Filename),
		"url":      row.URL,
	})
	if err != nil {
		return "", fmt.Errorf("html renderer: render row: %w", err)
	}
	return strings.TrimRight(result, "\n"), nil
}

// VersionHistory renders the history grid, or the no-releases block when the
// archive is empty.
func (r *Renderer) VersionHistory(_ context.Context, entries []page.HistoryEntry) (string, error) {
	if len(entries) == 0 {
		result, err := r.templates.RenderTemplate("templates/history_empty.tmpl", nil)
		if err != nil {
			return "", fmt.Errorf("html renderer: render empty history: %w", err)
		}
		return strings.TrimRight(result, "\n"), nil
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		item, err := r.templates.RenderTemplate("templates/history_item.tmpl", map[string]any{
			"version": r.sanitize(entry.Version),
			"url":     entry.URL,
		})
		if err != nil {
			return "", fmt.Errorf("html renderer: render history item %q: %w", entry.Version, err)
		}
		items = append(items, strings.TrimRight(item, "\n"))
	}

	result, err := r.templates.RenderTemplate("templates/history.tmpl", map[string]any{
		"items": strings.Join(items, "\n"),
	})
	if err != nil {
		return "", fmt.Errorf("html renderer: render history: %w", err)
	}
	return strings.TrimRight(result, "\n"), nil
}

// DefaultTemplate returns the embedded downloads page template.
func (r *Renderer) DefaultTemplate() (render.Template, error) {
	return render.LoadTemplateFS(embeddedTemplates, "templates/page.html.tmpl")
}

func (r *Renderer) sanitize(value string) string {
	return r.policy.Sanitize(value)
}
