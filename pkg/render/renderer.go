package render

import (
	"context"

	"github.com/barqly/release-pages/pkg/page"
)

// Renderer produces the format-specific blocks a page template expands to.
// One renderer exists per output format (HTML, Markdown); it is selected
// once per invocation, never per row.
type Renderer interface {
	Name() string
	ContentType() string

	// DownloadRow formats a single downloads-table row.
	DownloadRow(ctx context.Context, row page.DownloadRow) (string, error)

	// VersionHistory formats the whole version-history block. An empty entry
	// slice yields the format's defined fallback text, never an empty string.
	VersionHistory(ctx context.Context, entries []page.HistoryEntry) (string, error)

	// DefaultTemplate returns the renderer's built-in page template so the
	// tool works without external template files.
	DefaultTemplate() (Template, error)
}
