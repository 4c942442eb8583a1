package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "uploads/")

	res, err := l.Put(context.Background(), strings.NewReader("png bytes"), PutInput{Filename: "Cover.PNG"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(res.Key, ".png"))
	assert.Equal(t, "/uploads/"+res.Key, res.URL)

	b, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(b))

	require.NoError(t, l.Delete(context.Background(), "../"+res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalRejectsNonImages(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("#!/bin/sh"), PutInput{Filename: "run.sh"})
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestFactory(t *testing.T) {
	res, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.Equal(t, "local", res.Driver)

	res, err = New(context.Background(), Config{Driver: "none"})
	require.NoError(t, err)
	assert.Nil(t, res.Storage)

	_, err = New(context.Background(), Config{Driver: "s3"})
	assert.Error(t, err)

	_, err = New(context.Background(), Config{Driver: "ftp"})
	assert.Error(t, err)
}

func TestContentTypeFallsBackToExtension(t *testing.T) {
	assert.Equal(t, "image/webp", contentType(PutInput{ContentType: "application/octet-stream"}, ".webp"))
	assert.Equal(t, "image/png", contentType(PutInput{ContentType: "image/png"}, ".png"))
}

func TestNewS3UsesStaticKeysAndEndpoint(t *testing.T) {
	ctx := context.Background()
	s, err := NewS3(ctx, S3Config{
		Region:          "us-east-1",
		Bucket:          "catalog",
		Prefix:          "/products/",
		PublicBaseURL:   "http://localhost:9000/catalog/",
		Endpoint:        "http://localhost:9000",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio-secret",
	})
	require.NoError(t, err)
	assert.Equal(t, "products", s.Prefix)
	assert.Equal(t, "http://localhost:9000/catalog", s.PublicBaseURL)

	opts := s.Client.Options()
	assert.True(t, opts.UsePathStyle)
	creds, err := opts.Credentials.Retrieve(ctx)
	require.NoError(t, err)
	assert.Equal(t, "minio", creds.AccessKeyID)
}
