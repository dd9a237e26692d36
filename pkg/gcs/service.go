// Package gcs wraps Google Cloud Storage behind a small client used by the
// document service to publish generated ROI reports.
package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
)

// Client uploads and signs URLs for objects in a single bucket.
type Client struct {
	client     *storage.Client
	bucketName string
}

// NewClient dials GCS using application-default credentials.
func NewClient(ctx context.Context, bucketName string) (*Client, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}
	return &Client{client: client, bucketName: bucketName}, nil
}

// BucketName returns the bucket this client was configured for, so
// callers can build a gs:// URI for GetPresignedURL without holding onto
// the bucket name themselves.
func (c *Client) BucketName() string {
	return c.bucketName
}

// Upload writes content to objectPath in the client's bucket and returns
// its public URL.
func (c *Client) Upload(ctx context.Context, objectPath string, content io.Reader) (string, error) {
	obj := c.client.Bucket(c.bucketName).Object(objectPath)
	writer := obj.NewWriter(ctx)
	if _, err := io.Copy(writer, content); err != nil {
		return "", fmt.Errorf("failed to copy content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", c.bucketName, objectPath), nil
}

// GetPresignedURL signs a time-limited GET URL for a gs:// object URI.
func (c *Client) GetPresignedURL(ctx context.Context, gcsURI string, expiresAt time.Time) (string, error) {
	opts := &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  "GET",
		Expires: expiresAt,
	}

	bucketName := strings.TrimPrefix(gcsURI, "gs://")
	bucketName = strings.Split(bucketName, "/")[0]
	objectPath := strings.TrimPrefix(gcsURI, "gs://"+bucketName+"/")

	url, err := c.client.Bucket(bucketName).SignedURL(objectPath, opts)
	if err != nil {
		return "", fmt.Errorf("failed to get presigned url: %w", err)
	}
	return url, nil
}

// Close releases the underlying GCS client.
func (c *Client) Close() error {
	return c.client.Close()
}
