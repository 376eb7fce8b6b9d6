// Package cdn uploads pictures to an HTTP image CDN with an unsigned
// upload endpoint. The CDN responds with a JSON document whose secure_url
// field is the public address of the stored image.
package cdn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"

	apperrors "github.com/eduatlas/catalog/pkg/errors"
	"github.com/eduatlas/catalog/pkg/httpclient"
)

// Config holds CDN uploader configuration.
type Config struct {
	// UploadURL is the full upload endpoint, including any cloud name
	// path segments.
	UploadURL string

	// UploadPreset is the unsigned upload preset sent with each request.
	UploadPreset string
}

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
}

// Uploader sends images to the CDN through a circuit-breaker protected
// HTTP client.
type Uploader struct {
	client *httpclient.CircuitBreakerClient
	cfg    Config
	logger *slog.Logger
}

// New creates a CDN uploader.
func New(client *httpclient.CircuitBreakerClient, cfg Config, logger *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		cfg:    cfg,
		logger: logger,
	}
}

// Upload posts the image as a multipart form and returns the secure URL
// the CDN assigned. Any transport, status, or decoding problem is
// reported as an upload failure.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	body, contentType, err := encodeForm(u.cfg.UploadPreset, filename, content)
	if err != nil {
		return "", apperrors.UploadFailed(err)
	}

	resp, err := u.client.Post(ctx, u.cfg.UploadURL, contentType, body)
	if err != nil {
		return "", apperrors.UploadFailed(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		u.logger.WarnContext(ctx, "cdn rejected upload",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(raw)),
		)
		return "", apperrors.UploadFailed(fmt.Errorf("cdn responded %d", resp.StatusCode))
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", apperrors.UploadFailed(fmt.Errorf("decode cdn response: %w", err))
	}
	if out.SecureURL == "" {
		return "", apperrors.UploadFailed(fmt.Errorf("cdn response missing secure_url"))
	}

	return out.SecureURL, nil
}

func encodeForm(preset, filename string, content io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if preset != "" {
		if err := w.WriteField("upload_preset", preset); err != nil {
			return nil, "", fmt.Errorf("write upload_preset field: %w", err)
		}
	}

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, "", fmt.Errorf("copy image: %w", err)
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize form: %w", err)
	}

	return &buf, w.FormDataContentType(), nil
}
