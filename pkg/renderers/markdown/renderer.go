// Package markdown renders download-page blocks as Markdown table rows and a
// flat version-history list.
package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

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
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the Markdown renderer applying any provided options.
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
			return nil, fmt.Errorf("markdown renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "markdown"
}

func (r *Renderer) ContentType() string {
	return "text/markdown; charset=utf-8"
}

// DownloadRow renders one table row line.
func (r *Renderer) DownloadRow(_ context.Context, row page.DownloadRow) (string, error) {
	result, err := r.templates.RenderTemplate("templates/row.tmpl", map[string]any{
		"platform": row.Platform,
		"size":     row.Size,
		"filename": row.Filename,
		"url":      row.URL,
	})
	if err != nil {
		return "", fmt.Errorf("markdown renderer: render row: %w", err)
	}
	return strings.TrimRight(result, "\n"), nil
}

// VersionHistory renders one list line per archived release, or the fallback
// sentence when the archive is empty.
func (r *Renderer) VersionHistory(_ context.Context, entries []page.HistoryEntry) (string, error) {
	if len(entries) == 0 {
		result, err := r.templates.RenderTemplate("templates/history_empty.tmpl", nil)
		if err != nil {
			return "", fmt.Errorf("markdown renderer: render empty history: %w", err)
		}
		return strings.TrimRight(result, "\n"), nil
	}

	items := make([]string, 0, len(entries))
	for _, entry := range entries {
		item, err := r.templates.RenderTemplate("templates/history_item.tmpl", map[string]any{
			"version": entry.Version,
			"url":     entry.URL,
		})
		if err != nil {
			return "", fmt.Errorf("markdown renderer: render history item %q: %w", entry.Version, err)
		}
		items = append(items, strings.TrimRight(item, "\n"))
	}

	return strings.Join(items, "\n"), nil
}

// DefaultTemplate returns the embedded downloads page template.
func (r *Renderer) DefaultTemplate() (render.Template, error) {
	return render.LoadTemplateFS(embeddedTemplates, "templates/page.md.tmpl")
}
