package generator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/barqly/release-pages/pkg/release"
	"github.com/barqly/release-pages/pkg/render"
)

const dataFixture = `{
	"latest": {
		"version": "1.2.0",
		"release_date": "2025-06-01",
		"github_release_url": "https://github.com/barqly/barqly-vault/releases/tag/v1.2.0",
		"verification": {"checksums_url": "https://example.com/checksums.txt"},
		"downloads": {
			"macos_arm64": {"filename": "Vault.dmg", "size": "10 MB"},
			"solaris_sparc": {"filename": "vault.pkg", "size": "9 MB"}
		}
	},
	"archive": [
		{"version": "1.1.0", "github_release_url": "https://github.com/barqly/barqly-vault/releases/tag/v1.1.0"},
		{"version": "1.0.0", "github_release_url": "https://github.com/barqly/barqly-vault/releases/tag/v1.0.0"}
	]
}`

const pageTemplate = `<h1>Version {{LATEST_VERSION}}</h1>
<table>
{{DOWNLOAD_ROWS}}
</table>
{{VERSION_HISTORY}}
{{UNSET_TOKEN}}`

func writeFixtures(t *testing.T) (dataPath, templatePath string) {
	t.Helper()
	dir := t.TempDir()

	dataPath = filepath.Join(dir, "downloads.json")
	if err := os.WriteFile(dataPath, []byte(dataFixture), 0o644); err != nil {
		t.Fatalf("write data fixture: %v", err)
	}

	templatePath = filepath.Join(dir, "downloads.html.template")
	if err := os.WriteFile(templatePath, []byte(pageTemplate), 0o644); err != nil {
		t.Fatalf("write template fixture: %v", err)
	}
	return dataPath, templatePath
}

func TestGenerate_EndToEnd(t *testing.T) {
	dataPath, templatePath := writeFixtures(t)

	gen := New()
	output, err := gen.Generate(context.Background(), Request{
		DataSource:   release.SourceFromFile(dataPath),
		TemplatePath: templatePath,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rendered := string(output)
	if !strings.Contains(rendered, "<h1>Version 1.2.0</h1>") {
		t.Fatalf("expected substituted version, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "https://github.com/barqly/barqly-vault/releases/download/v1.2.0/Vault.dmg") {
		t.Fatalf("expected download URL, got:\n%s", rendered)
	}
	if strings.Contains(rendered, "solaris_sparc") || strings.Contains(rendered, "vault.pkg") {
		t.Fatalf("unknown platform key must not be rendered, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "Version 1.1.0") || !strings.Contains(rendered, "Version 1.0.0") {
		t.Fatalf("expected version history entries, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "{{UNSET_TOKEN}}") {
		t.Fatalf("unmatched token must stay verbatim, got:\n%s", rendered)
	}
}

func TestGenerate_RendererDetectedFromTemplateName(t *testing.T) {
	dataPath, _ := writeFixtures(t)

	dir := t.TempDir()
	templatePath := filepath.Join(dir, "downloads.md.template")
	if err := os.WriteFile(templatePath, []byte("{{DOWNLOAD_ROWS}}"), 0o644); err != nil {
		t.Fatalf("write template fixture: %v", err)
	}

	gen := New()
	output, err := gen.Generate(context.Background(), Request{
		DataSource:   release.SourceFromFile(dataPath),
		TemplatePath: templatePath,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if !strings.HasPrefix(string(output), "| macOS (Apple Silicon) |") {
		t.Fatalf("expected markdown row, got:\n%s", output)
	}
}

func TestGenerate_DefaultTemplate(t *testing.T) {
	dataPath, _ := writeFixtures(t)

	gen := New()
	output, err := gen.Generate(context.Background(), Request{
		DataSource: release.SourceFromFile(dataPath),
		Renderer:   "markdown",
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rendered := string(output)
	if !strings.Contains(rendered, "**1.2.0**") {
		t.Fatalf("expected embedded markdown template output, got:\n%s", rendered)
	}
	if !strings.Contains(rendered, "- [Version 1.1.0]") {
		t.Fatalf("expected version history list, got:\n%s", rendered)
	}
}

func TestGenerate_DataNotFound(t *testing.T) {
	gen := New()
	_, err := gen.Generate(context.Background(), Request{
		DataSource: release.SourceFromFile(filepath.Join(t.TempDir(), "missing.json")),
		Renderer:   "html",
	})
	if !errors.Is(err, release.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

func TestGenerate_TemplateNotFound(t *testing.T) {
	dataPath, _ := writeFixtures(t)

	gen := New()
	_, err := gen.Generate(context.Background(), Request{
		DataSource:   release.SourceFromFile(dataPath),
		TemplatePath: filepath.Join(t.TempDir(), "missing.html"),
	})
	if !errors.Is(err, render.ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
}

func TestGenerate_MissingField(t *testing.T) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "downloads.json")
	if err := os.WriteFile(dataPath, []byte(`{"latest": {"version": "1.0.0"}}`), 0o644); err != nil {
		t.Fatalf("write data fixture: %v", err)
	}

	gen := New()
	_, err := gen.Generate(context.Background(), Request{
		DataSource: release.SourceFromFile(dataPath),
		Renderer:   "html",
	})

	var missing *release.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
}

func TestGenerate_InlineDataAndTemplate(t *testing.T) {
	downloads := release.NewDownloads()
	downloads.Set("macos_arm64", release.DownloadEntry{Filename: "Vault.dmg", Size: "10 MB"})
	data := release.ReleaseData{
		Latest: release.LatestRelease{
			Version:          "1.2.0",
			ReleaseDate:      "2025-06-01",
			GitHubReleaseURL: "https://github.com/barqly/barqly-vault/releases/tag/v1.2.0",
			Verification:     release.Verification{ChecksumsURL: "https://example.com/checksums.txt"},
			Downloads:        downloads,
		},
	}

	tpl := render.NewTemplate("inline.md", "{{VERSION_HISTORY}}")

	gen := New()
	output, err := gen.Generate(context.Background(), Request{
		Data:     &data,
		Template: &tpl,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if string(output) != "Version history will be available after multiple releases." {
		t.Fatalf("expected markdown fallback, got %q", output)
	}
}

func TestGenerate_RepositoryOption(t *testing.T) {
	dataPath, templatePath := writeFixtures(t)

	gen := New(WithRepository("acme/widgets"))
	output, err := gen.Generate(context.Background(), Request{
		DataSource:   release.SourceFromFile(dataPath),
		TemplatePath: templatePath,
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), "https://github.com/acme/widgets/releases/download/v1.2.0/Vault.dmg") {
		t.Fatalf("expected overridden repository in URL, got:\n%s", output)
	}
}

func TestGenerate_VariablesOverride(t *testing.T) {
	dataPath, templatePath := writeFixtures(t)

	gen := New(WithVariables(map[string]string{"LATEST_VERSION": "generator-wide"}))
	output, err := gen.Generate(context.Background(), Request{
		DataSource:   release.SourceFromFile(dataPath),
		TemplatePath: templatePath,
		Variables:    map[string]string{"LATEST_VERSION": "per-request"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(string(output), "<h1>Version per-request</h1>") {
		t.Fatalf("expected request variables to win, got:\n%s", output)
	}
}

func TestGenerate_UnknownRenderer(t *testing.T) {
	dataPath, templatePath := writeFixtures(t)

	gen := New()
	_, err := gen.Generate(context.Background(), Request{
		DataSource:   release.SourceFromFile(dataPath),
		TemplatePath: templatePath,
		Renderer:     "pdf",
	})
	if err == nil {
		t.Fatalf("expected error for unknown renderer")
	}
}

func TestGenerate_RequiresDataSource(t *testing.T) {
	gen := New()
	_, err := gen.Generate(context.Background(), Request{Renderer: "html"})
	if err == nil {
		t.Fatalf("expected error when neither data nor data source is supplied")
	}
}
