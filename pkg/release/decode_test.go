package release

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const jsonFixture = `{
	"latest": {
		"version": "1.2.0",
		"release_date": "2025-06-01",
		"github_release_url": "https://github.com/barqly/barqly-vault/releases/tag/v1.2.0",
		"verification": {"checksums_url": "https://example.com/checksums.txt"},
		"downloads": {
			"macos_arm64": {"filename": "Vault.dmg", "size": "10 MB"},
			"windows_msi": {"filename": "Vault.msi", "size": "18 MB"}
		}
	},
	"archive": [
		{"version": "1.1.0", "github_release_url": "https://github.com/barqly/barqly-vault/releases/tag/v1.1.0"}
	]
}`

const yamlFixture = `latest:
  version: 1.2.0
  release_date: "2025-06-01"
  github_release_url: https://github.com/barqly/barqly-vault/releases/tag/v1.2.0
  verification:
    checksums_url: https://example.com/checksums.txt
  downloads:
    windows_msi:
      filename: Vault.msi
      size: 18 MB
    macos_arm64:
      filename: Vault.dmg
      size: 10 MB
archive:
  - version: 1.1.0
    github_release_url: https://github.com/barqly/barqly-vault/releases/tag/v1.1.0
`

func TestDecodeDocument_JSON(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("data/downloads.json"), []byte(jsonFixture))

	data, err := DecodeDocument(doc)
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}

	if data.Latest.Version != "1.2.0" {
		t.Fatalf("unexpected version %q", data.Latest.Version)
	}
	if diff := cmp.Diff([]string{"macos_arm64", "windows_msi"}, data.Latest.Downloads.Keys()); diff != "" {
		t.Fatalf("downloads order mismatch (-want +got):\n%s", diff)
	}
	if len(data.Archive) != 1 || data.Archive[0].Version != "1.1.0" {
		t.Fatalf("unexpected archive %+v", data.Archive)
	}
}

func TestDecodeDocument_YAMLByExtension(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("data/downloads.yaml"), []byte(yamlFixture))

	data, err := DecodeDocument(doc)
	if err != nil {
		t.Fatalf("decode document: %v", err)
	}

	if diff := cmp.Diff([]string{"windows_msi", "macos_arm64"}, data.Latest.Downloads.Keys()); diff != "" {
		t.Fatalf("downloads order mismatch (-want +got):\n%s", diff)
	}
	if data.Latest.Verification.ChecksumsURL != "https://example.com/checksums.txt" {
		t.Fatalf("unexpected checksums url %q", data.Latest.Verification.ChecksumsURL)
	}
}

func TestDecodeDocument_MissingFieldSurfaces(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("data/downloads.json"), []byte(`{"latest": {"version": "1.0.0"}}`))

	_, err := DecodeDocument(doc)
	var missing *MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldError, got %v", err)
	}
	if missing.Path != "latest.release_date" {
		t.Fatalf("unexpected path %q", missing.Path)
	}
}

func TestDecodeDocument_MalformedJSON(t *testing.T) {
	doc := MustNewDocument(SourceFromFile("data/downloads.json"), []byte(`{"latest": `))

	if _, err := DecodeDocument(doc); err == nil {
		t.Fatalf("expected decode error for malformed JSON")
	}
}
