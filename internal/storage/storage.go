// Package storage keeps uploaded product images and hands back their
// public URLs.
package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
)

var ErrUnsupportedType = errors.New("storage: only png, jpeg, webp and gif images are accepted")

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

var imageTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	".gif":  "image/gif",
}

// ImageExt returns the normalized extension of an accepted image file name.
func ImageExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := imageTypes[ext]; !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

// contentType prefers the declared type and falls back to the extension's.
func contentType(in PutInput, ext string) string {
	if strings.HasPrefix(in.ContentType, "image/") {
		return in.ContentType
	}
	return imageTypes[ext]
}
