package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	in   *s3.PutObjectInput
	body string
	err  error
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	b, _ := io.ReadAll(in.Body)
	f.body = string(b)
	return &s3.PutObjectOutput{}, f.err
}

func TestUploadReturnsPublicURL(t *testing.T) {
	fake := &fakeS3{}
	u := &S3Uploader{client: fake, bucket: "logos", publicURL: "https://cdn.example.com"}

	url, err := u.Upload(context.Background(), "barbershops/1/logo.webp", strings.NewReader("img"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/barbershops/1/logo.webp", url)
	assert.Equal(t, "logos", *fake.in.Bucket)
	assert.Equal(t, "image/webp", *fake.in.ContentType)
	assert.Equal(t, "img", fake.body)
}

func TestUploadWrapsError(t *testing.T) {
	u := &S3Uploader{client: &fakeS3{err: errors.New("denied")}, bucket: "logos"}

	_, err := u.Upload(context.Background(), "k", strings.NewReader(""), "image/webp")
	assert.ErrorContains(t, err, "denied")
}

func TestLogoKey(t *testing.T) {
	assert.Equal(t, "barbershops/abc-1/logo-v_2.webp", LogoKey("abc-1", "v/2"))
}
