package loader

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/barqly/release-pages/pkg/release"
)

// Loader implements release.Loader by delegating to file, fs.FS, or HTTP
// strategies. Construction helpers live in the top-level releasepages
// package.
type Loader struct {
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// Ensure the implementation satisfies the public interface.
var _ release.Loader = (*Loader)(nil)

// New constructs a Loader from pre-resolved options.
func New(options release.LoaderOptions) release.Loader {
	timeout := options.RequestTimeout

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		httpClient = &clone
	case options.AllowHTTPFallback:
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Loader{
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   timeout,
	}
}

// Load fetches a document from the provided source and wraps it in a
// Document. Missing documents surface as release.ErrDataNotFound.
func (l *Loader) Load(ctx context.Context, src release.Source) (release.Document, error) {
	if src == nil {
		return release.Document{}, errors.New("release loader: source is nil")
	}

	var (
		data []byte
		err  error
	)

	switch src.Kind() {
	case release.SourceKindFile:
		data, err = loadFile(ctx, src.Location())
	case release.SourceKindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case release.SourceKindURL:
		if !l.allowHTTP {
			return release.Document{}, errors.New("release loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.New("release loader: unsupported source kind")
	}
	if err != nil {
		return release.Document{}, err
	}

	return release.NewDocument(src, data)
}
