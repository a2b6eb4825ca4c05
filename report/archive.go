package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ArchiveCredentials configures access to an S3-compatible object store used
// to archive generated reports.
type ArchiveCredentials struct {
	Endpoint        string `yaml:"endpoint" json:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id" json:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key" json:"secret_access_key"`
	SessionToken    string `yaml:"session_token,omitempty" json:"session_token,omitempty"`
	UseSSL          bool   `yaml:"use_ssl" json:"use_ssl"`
	Bucket          string `yaml:"bucket" json:"bucket"`
}

// NewMinioClient creates a Minio client from the credentials.
func (creds *ArchiveCredentials) NewMinioClient() (*minio.Client, error) {
	if creds.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	if creds.AccessKeyID == "" {
		return nil, errors.New("access key ID is required")
	}
	if creds.SecretAccessKey == "" {
		return nil, errors.New("secret access key is required")
	}

	client, err := minio.New(creds.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken),
		Secure: creds.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating S3 client for endpoint %s: %w", creds.Endpoint, err)
	}
	return client, nil
}

// contentTypes maps report formats to upload content types.
var contentTypes = map[string]string{
	"json":     "application/json",
	"yaml":     "application/yaml",
	"yml":      "application/yaml",
	"markdown": "text/markdown",
	"md":       "text/markdown",
	"html":     "text/html",
}

// Archive uploads serialized report data under objectKey in the configured
// bucket. The format selects the upload content type.
func (creds *ArchiveCredentials) Archive(ctx context.Context, objectKey, format string, data []byte) error {
	if creds.Bucket == "" {
		return errors.New("bucket is required")
	}

	client, err := creds.NewMinioClient()
	if err != nil {
		return fmt.Errorf("creating S3 client: %w", err)
	}

	contentType, ok := contentTypes[format]
	if !ok {
		contentType = "application/octet-stream"
	}

	_, err = client.PutObject(ctx, creds.Bucket, objectKey,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("uploading report %s to bucket %s: %w", objectKey, creds.Bucket, err)
	}

	return nil
}
