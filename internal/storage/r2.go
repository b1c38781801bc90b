// Package storage uploads original note source files to Cloudflare R2 so
// a note can link back to the document it was generated from.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"net/url"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"quiznote/internal/config"
)

// Client wraps an S3 client pointed at an R2 bucket.
type Client struct {
	s3Client   *s3.Client
	bucketName string
	publicURL  string
}

// NewClient configures the R2 client from app config. Returns (nil, nil)
// when R2 is not configured; callers treat a nil client as uploads-disabled.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if !cfg.R2Configured() {
		log.Println("WARN: R2 object storage not configured, note file uploads will be skipped")
		return nil, nil
	}

	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
		}, nil
	})

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithEndpointResolverWithOptions(resolver),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.R2AccessKeyID, cfg.R2SecretAccessKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config for R2: %w", err)
	}

	return &Client{
		s3Client:   s3.NewFromConfig(awsCfg),
		bucketName: cfg.R2BucketName,
		publicURL:  cfg.R2PublicURL,
	}, nil
}

// UploadNoteFile stores the original source file under
// note/<owner>/<note>/<filename> and returns its public URL.
func (c *Client) UploadNoteFile(ctx context.Context, ownerID, noteID uuid.UUID, filename string, content io.Reader) (string, error) {
	if c == nil || c.s3Client == nil {
		return "", fmt.Errorf("R2 client not initialized")
	}

	objectKey := fmt.Sprintf("note/%s/%s/%s", ownerID, noteID, filename)

	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := c.s3Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucketName),
		Key:         aws.String(objectKey),
		Body:        content,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload note file to R2 (key: %s): %w", objectKey, err)
	}

	baseURL, err := url.Parse(c.publicURL)
	if err != nil {
		return "", fmt.Errorf("invalid R2 public base URL configured: %w", err)
	}
	baseURL.Path = path.Join(baseURL.Path, objectKey)

	return baseURL.String(), nil
}
