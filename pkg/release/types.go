package release

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ReleaseData is the root record of a release data document.
type ReleaseData struct {
	Latest  LatestRelease  `json:"latest" yaml:"latest"`
	Archive []ArchiveEntry `json:"archive" yaml:"archive"`
}

// LatestRelease describes the current release and its downloadable artifacts.
type LatestRelease struct {
	Version          string       `json:"version" yaml:"version"`
	ReleaseDate      string       `json:"release_date" yaml:"release_date"`
	GitHubReleaseURL string       `json:"github_release_url" yaml:"github_release_url"`
	Verification     Verification `json:"verification" yaml:"verification"`
	Downloads        Downloads    `json:"downloads" yaml:"downloads"`
}

// Verification carries pointers callers can use to verify artifacts.
type Verification struct {
	ChecksumsURL string `json:"checksums_url" yaml:"checksums_url"`
}

// DownloadEntry describes a single downloadable artifact. Size is
// pre-formatted display text (e.g. "12.3 MB"), not a byte count.
type DownloadEntry struct {
	Filename string `json:"filename" yaml:"filename"`
	Size     string `json:"size" yaml:"size"`
}

// ArchiveEntry is a historical release retained for the version-history
// listing.
type ArchiveEntry struct {
	Version          string `json:"version" yaml:"version"`
	GitHubReleaseURL string `json:"github_release_url" yaml:"github_release_url"`
}

// Downloads maps platform keys to download entries while preserving document
// order. Go maps do not keep insertion order, so decoding walks the raw
// document instead of relying on map iteration.
type Downloads struct {
	keys    []string
	entries map[string]DownloadEntry
}

// NewDownloads builds an ordered Downloads value from alternating key/entry
// pairs supplied via Set.
func NewDownloads() Downloads {
	return Downloads{entries: make(map[string]DownloadEntry)}
}

// Set inserts or replaces an entry. First insertion fixes the key's position.
func (d *Downloads) Set(key string, entry DownloadEntry) {
	if d.entries == nil {
		d.entries = make(map[string]DownloadEntry)
	}
	if _, exists := d.entries[key]; !exists {
		d.keys = append(d.keys, key)
	}
	d.entries[key] = entry
}

// Get returns the entry for key and whether it exists.
func (d Downloads) Get(key string) (DownloadEntry, bool) {
	entry, ok := d.entries[key]
	return entry, ok
}

// Keys returns the platform keys in document order.
func (d Downloads) Keys() []string {
	return append([]string(nil), d.keys...)
}

// Len reports the number of entries.
func (d Downloads) Len() int {
	return len(d.entries)
}

// UnmarshalJSON decodes a JSON object preserving key order.
func (d *Downloads) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("release: decode downloads: %w", err)
	}
	if tok == nil {
		*d = Downloads{}
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("release: downloads must be a JSON object")
	}

	out := NewDownloads()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("release: decode downloads key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return errors.New("release: downloads key must be a string")
		}

		var entry DownloadEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("release: decode downloads entry %q: %w", key, err)
		}
		out.Set(key, entry)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("release: decode downloads: %w", err)
	}

	*d = out
	return nil
}

// MarshalJSON encodes the entries as a JSON object in document order.
func (d Downloads) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		entry, err := json.Marshal(d.entries[key])
		if err != nil {
			return nil, err
		}
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalYAML decodes a YAML mapping preserving key order.
func (d *Downloads) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || value.Tag == "!!null" {
		*d = Downloads{}
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return errors.New("release: downloads must be a YAML mapping")
	}

	out := NewDownloads()
	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		var entry DownloadEntry
		if err := value.Content[i+1].Decode(&entry); err != nil {
			return fmt.Errorf("release: decode downloads entry %q: %w", key, err)
		}
		out.Set(key, entry)
	}

	*d = out
	return nil
}

// Validate checks that every required field is present. It performs existence
// checks only; no format validation happens here.
func (r ReleaseData) Validate() error {
	if strings.TrimSpace(r.Latest.Version) == "" {
		return &MissingFieldError{Path: "latest.version"}
	}
	if strings.TrimSpace(r.Latest.ReleaseDate) == "" {
		return &MissingFieldError{Path: "latest.release_date"}
	}
	if strings.TrimSpace(r.Latest.GitHubReleaseURL) == "" {
		return &MissingFieldError{Path: "latest.github_release_url"}
	}
	if strings.TrimSpace(r.Latest.Verification.ChecksumsURL) == "" {
		return &MissingFieldError{Path: "latest.verification.checksums_url"}
	}

	for _, key := range r.Latest.Downloads.Keys() {
		entry, _ := r.Latest.Downloads.Get(key)
		if strings.TrimSpace(entry.Filename) == "" {
			return &MissingFieldError{Path: "latest.downloads." + key + ".filename"}
		}
		if strings.TrimSpace(entry.Size) == "" {
			return &MissingFieldError{Path: "latest.downloads." + key + ".size"}
		}
	}

	for i, entry := range r.Archive {
		if strings.TrimSpace(entry.Version) == "" {
			return &MissingFieldError{Path: fmt.Sprintf("archive[%d].version", i)}
		}
		if strings.TrimSpace(entry.GitHubReleaseURL) == "" {
			return &MissingFieldError{Path: fmt.Sprintf("archive[%d].github_release_url", i)}
		}
	}

	return nil
}
