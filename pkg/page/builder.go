package page

import (
	"fmt"
	"strings"

	"github.com/barqly/release-pages/pkg/platform"
	"github.com/barqly/release-pages/pkg/release"
)

// DefaultRepository is the GitHub "org/repo" slug download URLs point at
// when no override is configured.
const DefaultRepository = "barqly/barqly-vault"

// Builder converts release data into a page model.
type Builder interface {
	Build(data release.ReleaseData) (Model, error)
}

// BuilderOption customises the default builder.
type BuilderOption func(*builder)

// WithRepository overrides the GitHub "org/repo" slug used in download URLs.
func WithRepository(slug string) BuilderOption {
	return func(b *builder) {
		if trimmed := strings.TrimSpace(slug); trimmed != "" {
			b.repository = trimmed
		}
	}
}

// WithPlatforms overrides the platform lookup table.
func WithPlatforms(table platform.Table) BuilderOption {
	return func(b *builder) {
		b.platforms = table
	}
}

type builder struct {
	repository string
	platforms  platform.Table
}

// NewBuilder constructs the default builder applying any provided options.
func NewBuilder(options ...BuilderOption) Builder {
	b := &builder{
		repository: DefaultRepository,
		platforms:  platform.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// Build resolves the downloads against the platform table, constructs the
// download URLs, and derives the default scalar variables. Unknown platform
// keys are skipped silently.
func (b *builder) Build(data release.ReleaseData) (Model, error) {
	latest := data.Latest

	model := Model{
		Version: latest.Version,
		Variables: map[string]string{
			"LATEST_VERSION":     latest.Version,
			"RELEASE_DATE":       latest.ReleaseDate,
			"GITHUB_RELEASE_URL": latest.GitHubReleaseURL,
			"CHECKSUMS_URL":      latest.Verification.ChecksumsURL,
		},
	}

	for _, key := range latest.Downloads.Keys() {
		info, known := b.platforms.Lookup(key)
		if !known {
			continue
		}
		entry, _ := latest.Downloads.Get(key)
		model.Downloads = append(model.Downloads, DownloadRow{
			Key:      key,
			Platform: info.Name,
			Format:   info.Format,
			Filename: entry.Filename,
			Size:     entry.Size,
			URL:      b.downloadURL(latest.Version, entry.Filename),
		})
	}

	for _, entry := range data.Archive {
		model.History = append(model.History, HistoryEntry{
			Version: entry.Version,
			URL:     entry.GitHubReleaseURL,
		})
	}

	return model, nil
}

func (b *builder) downloadURL(version, filename string) string {
	return fmt.Sprintf("https://github.com/%s/releases/download/v%s/%s", b.repository, version, filename)
}
