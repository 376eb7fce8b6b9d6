// Package memory is an in-memory uploader for local development and tests.
package memory

import (
	"context"
	"io"
	"strconv"
	"sync"
)

// Uploader keeps uploaded images in memory and hands out deterministic
// URLs.
type Uploader struct {
	mu      sync.Mutex
	baseURL string
	images  map[string][]byte
	seq     int
}

// New creates an in-memory uploader. Returned URLs start with baseURL.
func New(baseURL string) *Uploader {
	return &Uploader{
		baseURL: baseURL,
		images:  make(map[string][]byte),
	}
}

// Upload stores the image bytes and returns a URL unique to this upload.
func (u *Uploader) Upload(_ context.Context, filename string, content io.Reader) (string, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.seq++
	url := u.baseURL + "/" + strconv.Itoa(u.seq) + "/" + filename
	u.images[url] = data
	return url, nil
}

// Get returns the stored bytes for a URL, if present.
func (u *Uploader) Get(url string) ([]byte, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()

	data, ok := u.images[url]
	return data, ok
}

// Len returns the number of stored images.
func (u *Uploader) Len() int {
	u.mu.Lock()
	defer u.mu.Unlock()

	return len(u.images)
}
