package cdn

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/eduatlas/catalog/pkg/errors"
	"github.com/eduatlas/catalog/pkg/httpclient"
)

func newTestUploader(t *testing.T, handler http.HandlerFunc) *Uploader {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("cdn-test-"+t.Name()),
		slog.New(slog.DiscardHandler),
	)

	return New(client, Config{
		UploadURL:    srv.URL + "/upload",
		UploadPreset: "unsigned_products",
	}, slog.New(slog.DiscardHandler))
}

func TestUploader_Upload(t *testing.T) {
	up := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "unsigned_products", r.FormValue("upload_preset"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "pic.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"secure_url":"https://cdn.example.com/img/abc123.jpg"}`))
	})

	url, err := up.Upload(context.Background(), "pic.jpg", strings.NewReader("fake-image-bytes"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/img/abc123.jpg", url)
}

func TestUploader_Upload_RejectedStatus(t *testing.T) {
	up := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid preset"}`, http.StatusBadRequest)
	})

	url, err := up.Upload(context.Background(), "pic.jpg", strings.NewReader("x"))

	assert.Empty(t, url)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPLOAD_FAILED", appErr.Code)
}

func TestUploader_Upload_MissingSecureURL(t *testing.T) {
	up := newTestUploader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"abc123"}`))
	})

	url, err := up.Upload(context.Background(), "pic.jpg", strings.NewReader("x"))

	assert.Empty(t, url)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secure_url")
}

func TestUploader_Upload_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("cdn-test-unreachable"),
		slog.New(slog.DiscardHandler),
	)
	up := New(client, Config{UploadURL: srv.URL + "/upload"}, slog.New(slog.DiscardHandler))

	url, err := up.Upload(context.Background(), "pic.jpg", strings.NewReader("x"))

	assert.Empty(t, url)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UPLOAD_FAILED", appErr.Code)
}
