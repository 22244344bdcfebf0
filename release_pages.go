// Package releasepages renders software-release download pages (HTML and
// Markdown) from a release data document and {{TOKEN}} page templates.
package releasepages

import (
	"context"

	internalloader "github.com/barqly/release-pages/internal/release/loader"
	"github.com/barqly/release-pages/pkg/generator"
	"github.com/barqly/release-pages/pkg/release"
	"github.com/barqly/release-pages/pkg/render"
)

// Request aliases the generator request for convenience.
type Request = generator.Request

// RenderOptions aliases the per-invocation render options.
type RenderOptions = render.RenderOptions

// NewGenerator exposes the generator constructor from the top-level module.
func NewGenerator(options ...generator.Option) *generator.Generator {
	return generator.New(options...)
}

// NewLoader constructs a release data loader using the internal
// implementation while keeping the concrete type hidden from consumers.
func NewLoader(options ...release.LoaderOption) release.Loader {
	cfg := release.NewLoaderOptions(options...)
	return internalloader.New(cfg)
}

// Generate loads the release data source and renders the page template at
// templatePath using the renderer detected from the template name. It is the
// simplest entry point for callers that just want rendered bytes.
func Generate(ctx context.Context, source release.Source, templatePath string, options ...generator.Option) ([]byte, error) {
	gen := generator.New(options...)
	return gen.Generate(ctx, generator.Request{
		DataSource:   source,
		TemplatePath: templatePath,
	})
}

// GenerateFromData renders a page from already-decoded release data,
// bypassing the loader stage while still delegating to the generator.
func GenerateFromData(ctx context.Context, data release.ReleaseData, templatePath string, options ...generator.Option) ([]byte, error) {
	gen := generator.New(options...)
	return gen.Generate(ctx, generator.Request{
		Data:         &data,
		TemplatePath: templatePath,
	})
}
