package s3

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/kmzmerge/internal/core/domain"
)

type fakeUploader struct {
	bucket, key, contentType string
	body                     []byte
	location                 string
	err                      error
}

func (f *fakeUploader) Upload(_ context.Context, in *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.body = data
	return &manager.UploadOutput{Location: f.location}, nil
}

func writeTemp(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "AREA_Processed.kmz")
	require.NoError(t, os.WriteFile(path, []byte("PK-test"), 0o600))
	return path
}

func TestPublisher_ObjectKey(t *testing.T) {
	tests := []struct {
		prefix, key, want string
	}{
		{"", "a.kmz", "a.kmz"},
		{"outputs", "a.kmz", "outputs/a.kmz"},
		{"/outputs/", "/a.kmz", "outputs/a.kmz"},
		{"team/area", "a.kmz", "team/area/a.kmz"},
	}
	for _, tt := range tests {
		p := newPublisher(&fakeUploader{}, "bucket", tt.prefix)
		assert.Equal(t, tt.want, p.ObjectKey(tt.key))
	}
}

func TestPublisher_Publish(t *testing.T) {
	up := &fakeUploader{}
	p := newPublisher(up, "plans", "kmz")

	loc, err := p.Publish(context.Background(), writeTemp(t), "AREA_Processed.kmz")
	require.NoError(t, err)

	assert.Equal(t, "s3://plans/kmz/AREA_Processed.kmz", loc)
	assert.Equal(t, "plans", up.bucket)
	assert.Equal(t, "kmz/AREA_Processed.kmz", up.key)
	assert.Equal(t, ContentTypeKMZ, up.contentType)
	assert.Equal(t, []byte("PK-test"), up.body)
}

func TestPublisher_PublishUsesLocation(t *testing.T) {
	up := &fakeUploader{location: "https://plans.s3.amazonaws.com/AREA_Processed.kmz"}
	p := newPublisher(up, "plans", "")

	loc, err := p.Publish(context.Background(), writeTemp(t), "AREA_Processed.kmz")
	require.NoError(t, err)
	assert.Equal(t, up.location, loc)
}

func TestPublisher_PublishErrors(t *testing.T) {
	p := newPublisher(&fakeUploader{}, "plans", "")
	_, err := p.Publish(context.Background(), filepath.Join(t.TempDir(), "missing.kmz"), "x.kmz")
	assert.ErrorIs(t, err, os.ErrNotExist)

	boom := errors.New("access denied")
	p = newPublisher(&fakeUploader{err: boom}, "plans", "")
	_, err = p.Publish(context.Background(), writeTemp(t), "x.kmz")
	assert.ErrorIs(t, err, boom)
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConfigFromSettings(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")

	cfg := ConfigFromSettings(domain.PublishSettings{Bucket: "b", Prefix: "p", Region: "ap-southeast-3", Endpoint: "http://minio:9000"})
	assert.Equal(t, "b", cfg.Bucket)
	assert.Equal(t, "p", cfg.Prefix)
	assert.Equal(t, "ap-southeast-3", cfg.Region)
	assert.Equal(t, "http://minio:9000", cfg.Endpoint)
	assert.Equal(t, "AKID", cfg.AccessKey)
	assert.Equal(t, "SECRET", cfg.SecretKey)
}
