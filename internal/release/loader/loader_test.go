package loader

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/barqly/release-pages/pkg/release"
)

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "downloads.json")
	if err := os.WriteFile(path, []byte(`{"latest": {}}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	loader := New(release.NewLoaderOptions())
	doc, err := loader.Load(context.Background(), release.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if string(doc.Raw()) != `{"latest": {}}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoad_FileMissing(t *testing.T) {
	loader := New(release.NewLoaderOptions())
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := loader.Load(context.Background(), release.SourceFromFile(path))
	if !errors.Is(err, release.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{
		"data/downloads.json": &fstest.MapFile{Data: []byte(`{"archive": []}`)},
	}

	loader := New(release.NewLoaderOptions(release.WithFileSystem(files)))
	doc, err := loader.Load(context.Background(), release.SourceFromFS("data/downloads.json"))
	if err != nil {
		t.Fatalf("load fs: %v", err)
	}
	if doc.Location() != "data/downloads.json" {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoad_FSMissing(t *testing.T) {
	loader := New(release.NewLoaderOptions(release.WithFileSystem(fstest.MapFS{})))

	_, err := loader.Load(context.Background(), release.SourceFromFS("nope.json"))
	if !errors.Is(err, release.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

func TestLoad_HTTPDisabledByDefault(t *testing.T) {
	loader := New(release.NewLoaderOptions())

	_, err := loader.Load(context.Background(), release.SourceFromURL("https://example.com/data.json"))
	if err == nil {
		t.Fatalf("expected error when http support is disabled")
	}
}

func TestLoad_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"latest": {}}`))
	}))
	defer server.Close()

	loader := New(release.NewLoaderOptions(release.WithHTTPFallback(5 * time.Second)))
	doc, err := loader.Load(context.Background(), release.SourceFromURL(server.URL))
	if err != nil {
		t.Fatalf("load http: %v", err)
	}
	if string(doc.Raw()) != `{"latest": {}}` {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
}

func TestLoad_HTTPNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	loader := New(release.NewLoaderOptions(release.WithHTTPClient(server.Client())))
	_, err := loader.Load(context.Background(), release.SourceFromURL(server.URL))
	if !errors.Is(err, release.ErrDataNotFound) {
		t.Fatalf("expected ErrDataNotFound, got %v", err)
	}
}

func TestLoad_NilSource(t *testing.T) {
	loader := New(release.NewLoaderOptions())
	if _, err := loader.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loader := New(release.NewLoaderOptions())
	_, err := loader.Load(ctx, release.SourceFromFile("whatever.json"))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
