// Package storage puts public assets, such as barbershop logos, in an S3
// compatible bucket.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error)
}

type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client    putObjectAPI
	bucket    string
	publicURL string
}

// NewS3Uploader builds a client from static credentials. A custom endpoint
// (MinIO, R2) switches to path-style addressing.
func NewS3Uploader(cfg config.S3Config) *S3Uploader {
	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKey != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (u *S3Uploader) Upload(
	ctx context.Context,
	key string,
	body io.Reader,
	contentType string,
) (string, error) {

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         body,
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	return u.publicURL + "/" + key, nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LogoKey is the object key of a barbershop logo.
func LogoKey(barbershopID, version string) string {
	return path.Join(
		"barbershops",
		unsafeChars.ReplaceAllString(barbershopID, "_"),
		"logo-"+unsafeChars.ReplaceAllString(version, "_")+".webp",
	)
}

var _ Uploader = (*S3Uploader)(nil)
