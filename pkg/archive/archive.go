// Package archive keeps copies of rendered invoice PDFs in S3-compatible
// object storage.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	// ErrInvalidConfig indicates required storage settings are missing.
	ErrInvalidConfig = errors.New("archive: invalid configuration")

	// ErrUploadFailed indicates the object could not be stored.
	ErrUploadFailed = errors.New("archive: upload failed")
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

// Config holds object storage configuration. Archiving is disabled when
// Bucket is empty.
type Config struct {
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Prefix    string `yaml:"prefix"`
	PathStyle bool   `yaml:"path_style"`
}

// Enabled reports whether a bucket is configured.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// Archiver stores a rendered invoice and returns the key it was stored under.
type Archiver interface {
	Archive(ctx context.Context, batchID, clientEmail string, pdf []byte) (string, error)
}

// Nop discards everything.
type Nop struct{}

// Archive implements Archiver.
func (Nop) Archive(context.Context, string, string, []byte) (string, error) {
	return "", nil
}

// S3 implements Archiver on top of an S3 bucket.
type S3 struct {
	client *s3.Client
	cfg    Config
}

// NewS3 creates an S3 archiver. Static credentials are required.
func NewS3(cfg Config) (*S3, error) {
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Bucket == "" || cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, ErrInvalidConfig
	}

	client := s3.New(s3.Options{}, func(o *s3.Options) {
		o.Region = cfg.Region
		o.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = cfg.PathStyle
		}
	})

	return &S3{client: client, cfg: cfg}, nil
}

// Archive uploads the PDF under {prefix}/{batchID}/{clientEmail}.pdf.
func (s *S3) Archive(ctx context.Context, batchID, clientEmail string, pdf []byte) (string, error) {
	key := Key(s.cfg.Prefix, batchID, clientEmail)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(pdf),
		ContentLength: aws.Int64(int64(len(pdf))),
		ContentType:   aws.String("application/pdf"),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return key, nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9@._-]+`)

// Key builds the object key for a client's invoice within a batch.
func Key(prefix, batchID, clientEmail string) string {
	parts := make([]string, 0, 3)
	if p := strings.Trim(prefix, "/"); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, unsafeKeyChars.ReplaceAllString(batchID, "_"))
	parts = append(parts, unsafeKeyChars.ReplaceAllString(clientEmail, "_")+".pdf")
	return strings.Join(parts, "/")
}
