// Package s3 uploads pictures to an S3-compatible object store. It works
// with AWS S3 as well as MinIO, DigitalOcean Spaces, and Cloudflare R2.
package s3

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	apperrors "github.com/eduatlas/catalog/pkg/errors"
)

const keyPrefix = "products/"

// Config holds S3 uploader configuration.
type Config struct {
	Bucket string
	Region string

	// AccessKey and SecretKey are static credentials. Leave empty to use
	// the default AWS credential chain.
	AccessKey string
	SecretKey string

	// Endpoint overrides the S3 endpoint. Required for MinIO and other
	// non-AWS stores; leave empty for real AWS.
	Endpoint string

	// BaseURL is the public URL prefix for stored objects. Defaults to
	// the bucket's virtual-hosted AWS address.
	BaseURL string
}

// Uploader stores images as objects under a products/ key prefix.
type Uploader struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// New creates an S3 uploader from the given configuration.
func New(ctx context.Context, cfg Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 uploader: bucket is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 uploader: load aws config: %w", err)
	}

	var clientOpts []func(*s3.Options)
	if cfg.Endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			// Path-style addressing is required for MinIO.
			o.UsePathStyle = true
		})
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &Uploader{
		client:  s3.NewFromConfig(awsCfg, clientOpts...),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores the image under a generated key and returns its public
// URL. The original filename only contributes its extension.
func (u *Uploader) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	key := keyPrefix + uuid.NewString() + strings.ToLower(path.Ext(filename))

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   content,
	})
	if err != nil {
		return "", apperrors.UploadFailed(fmt.Errorf("put object %s: %w", key, err))
	}

	return u.baseURL + "/" + key, nil
}
