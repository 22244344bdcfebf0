// Package page turns decoded release data into the flat model renderers
// consume: resolved download rows, version-history entries, and the default
// scalar variables for token substitution.
package page

// Model is the renderer-facing view of one release data snapshot.
type Model struct {
	// Version is the latest release version without the "v" tag prefix.
	Version string

	// Variables holds the default scalar substitutions derived from the data
	// document (LATEST_VERSION, RELEASE_DATE, GITHUB_RELEASE_URL,
	// CHECKSUMS_URL).
	Variables map[string]string

	// Downloads lists the resolved download rows in data-document order.
	// Platform keys missing from the platform table never appear here.
	Downloads []DownloadRow

	// History lists archived releases in document order. May be empty.
	History []HistoryEntry
}

// DownloadRow is one row of the downloads table.
type DownloadRow struct {
	Key      string
	Platform string
	Format   string
	Filename string
	Size     string
	URL      string
}

// HistoryEntry is one version-history listing item.
type HistoryEntry struct {
	Version string
	URL     string
}
