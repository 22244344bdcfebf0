package release

import (
	"errors"
	"fmt"
)

// ErrDataNotFound reports that the release data document could not be located
// or read. Loaders wrap the underlying cause so errors.Is works against this
// sentinel.
var ErrDataNotFound = errors.New("release: data document not found")

// MissingFieldError reports a required field that is absent or empty in a
// decoded data document. Path uses dotted notation, e.g. "latest.version" or
// "archive[2].github_release_url".
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("release: missing required field %q", e.Path)
}
