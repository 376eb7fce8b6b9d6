// Package uploader abstracts picture storage. Implementations receive the
// raw image bytes and return a publicly reachable URL for the stored copy.
package uploader

import (
	"context"
	"io"
)

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, content io.Reader) (string, error)
}
