package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/barqly/release-pages/pkg/release"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("release loader: fs path is required")
	}
	if files == nil {
		return nil, errors.New("release loader: fs is nil")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(files, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", release.ErrDataNotFound, name)
		}
		return nil, err
	}
	return data, nil
}
