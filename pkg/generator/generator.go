// Package generator coordinates the full pipeline from release data document
// to rendered download page: load, decode, build the page model, resolve a
// renderer, and expand the page template.
package generator

import (
	"context"
	"errors"
	"fmt"

	internalloader "github.com/barqly/release-pages/internal/release/loader"
	"github.com/barqly/release-pages/pkg/page"
	"github.com/barqly/release-pages/pkg/release"
	"github.com/barqly/release-pages/pkg/render"
	"github.com/barqly/release-pages/pkg/renderers/htmlpage"
	"github.com/barqly/release-pages/pkg/renderers/markdown"
)

const defaultRendererName = "html"

// Option customises the generator configuration.
type Option func(*Generator)

// WithLoader injects a custom release data loader.
func WithLoader(loader release.Loader) Option {
	return func(g *Generator) {
		g.loader = loader
	}
}

// WithBuilder injects a custom page model builder.
func WithBuilder(builder page.Builder) Option {
	return func(g *Generator) {
		g.builder = builder
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit renderer and the template format cannot be detected.
func WithDefaultRenderer(name string) Option {
	return func(g *Generator) {
		if name != "" {
			g.defaultRenderer = name
		}
	}
}

// WithRepository overrides the GitHub "org/repo" slug the default builder
// uses for download URLs. Ignored when a custom builder is injected.
func WithRepository(slug string) Option {
	return func(g *Generator) {
		g.repository = slug
	}
}

// WithVariables seeds scalar substitutions applied to every request. Request
// variables win over these for the same key.
func WithVariables(vars map[string]string) Option {
	return func(g *Generator) {
		if len(vars) == 0 {
			return
		}
		if g.variables == nil {
			g.variables = make(map[string]string, len(vars))
		}
		for key, value := range vars {
			g.variables[key] = value
		}
	}
}

// Generator coordinates the load → decode → build → render sequence. Missing
// dependencies are initialised with the built-in implementations so callers
// can start with a single constructor call.
type Generator struct {
	loader          release.Loader
	builder         page.Builder
	registry        *render.Registry
	defaultRenderer string
	repository      string
	variables       map[string]string
	initialiseErr   error
	defaultsApplied bool
}

// New constructs a Generator applying any provided options.
func New(options ...Option) *Generator {
	g := &Generator{
		defaultRenderer: defaultRendererName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	g.applyDefaults()
	return g
}

// Request describes the inputs required to render one download page.
type Request struct {
	// DataSource identifies where the release data document lives. Optional
	// when Data is supplied.
	DataSource release.Source

	// Data allows callers to bypass the loader when they already hold decoded
	// release data. It is still validated before rendering.
	Data *release.ReleaseData

	// TemplatePath points at a page template on disk. Optional when Template
	// is supplied; when both are empty the renderer's built-in page template
	// is used.
	TemplatePath string

	// Template supplies inline template content, bypassing template loading.
	Template *render.Template

	// Renderer names the renderer to use. If empty, the generator detects the
	// format from the template name and falls back to the configured default.
	Renderer string

	// Variables adds or overrides scalar substitutions for this request.
	Variables map[string]string
}

// Generate executes the pipeline and returns the rendered page bytes.
func (g *Generator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := g.initialiseErr; err != nil {
		return nil, err
	}
	if !g.defaultsApplied {
		g.applyDefaults()
		if err := g.initialiseErr; err != nil {
			return nil, err
		}
	}

	data, err := g.resolveData(ctx, req)
	if err != nil {
		return nil, err
	}

	model, err := g.builder.Build(data)
	if err != nil {
		return nil, fmt.Errorf("generator: build page model: %w", err)
	}

	tpl, renderer, err := g.resolveTemplate(req)
	if err != nil {
		return nil, err
	}

	output, err := render.Render(ctx, renderer, tpl, model, render.RenderOptions{
		Variables: g.mergeVariables(req.Variables),
	})
	if err != nil {
		return nil, err
	}

	return []byte(output), nil
}

func (g *Generator) resolveData(ctx context.Context, req Request) (release.ReleaseData, error) {
	if req.Data != nil {
		if err := req.Data.Validate(); err != nil {
			return release.ReleaseData{}, err
		}
		return *req.Data, nil
	}
	if req.DataSource == nil {
		return release.ReleaseData{}, errors.New("generator: data source or data is required")
	}

	doc, err := g.loader.Load(ctx, req.DataSource)
	if err != nil {
		return release.ReleaseData{}, err
	}
	return release.DecodeDocument(doc)
}

func (g *Generator) resolveTemplate(req Request) (render.Template, render.Renderer, error) {
	var (
		tpl render.Template
		err error
	)

	switch {
	case req.Template != nil:
		tpl = *req.Template
	case req.TemplatePath != "":
		tpl, err = render.LoadTemplate(req.TemplatePath)
		if err != nil {
			return render.Template{}, nil, err
		}
	default:
		renderer, err := g.rendererByName(req.Renderer)
		if err != nil {
			return render.Template{}, nil, err
		}
		tpl, err = renderer.DefaultTemplate()
		if err != nil {
			return render.Template{}, nil, fmt.Errorf("generator: default template: %w", err)
		}
		return tpl, renderer, nil
	}

	if req.Renderer != "" {
		renderer, err := g.registry.Get(req.Renderer)
		if err != nil {
			return render.Template{}, nil, err
		}
		return tpl, renderer, nil
	}

	if format := tpl.Format(); format != render.FormatUnknown {
		renderer, err := g.registry.ForFormat(format)
		if err != nil {
			return render.Template{}, nil, err
		}
		return tpl, renderer, nil
	}

	renderer, err := g.registry.Get(g.defaultRenderer)
	if err != nil {
		return render.Template{}, nil, err
	}
	return tpl, renderer, nil
}

func (g *Generator) rendererByName(name string) (render.Renderer, error) {
	if name == "" {
		name = g.defaultRenderer
	}
	return g.registry.Get(name)
}

func (g *Generator) mergeVariables(extra map[string]string) map[string]string {
	if len(g.variables) == 0 {
		return extra
	}
	merged := make(map[string]string, len(g.variables)+len(extra))
	for key, value := range g.variables {
		merged[key] = value
	}
	for key, value := range extra {
		merged[key] = value
	}
	return merged
}

func (g *Generator) applyDefaults() {
	defer func() {
		g.defaultsApplied = true
	}()

	if g.loader == nil {
		g.loader = internalloader.New(release.NewLoaderOptions())
	}

	if g.builder == nil {
		var opts []page.BuilderOption
		if g.repository != "" {
			opts = append(opts, page.WithRepository(g.repository))
		}
		g.builder = page.NewBuilder(opts...)
	}

	if g.registry == nil {
		registry := render.NewRegistry()

		htmlRenderer, err := htmlpage.New()
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: initialise html renderer: %w", err)
			return
		}
		if err := registry.Register(htmlRenderer); err != nil {
			g.initialiseErr = err
			return
		}

		mdRenderer, err := markdown.New()
		if err != nil {
			g.initialiseErr = fmt.Errorf("generator: initialise markdown renderer: %w", err)
			return
		}
		if err := registry.Register(mdRenderer); err != nil {
			g.initialiseErr = err
			return
		}

		g.registry = registry
	}
}
