package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Local writes files under BaseDir; the console serves them at URLPrefix.
type Local struct {
	BaseDir   string
	URLPrefix string
}

func NewLocal(baseDir, urlPrefix string) *Local {
	return &Local{BaseDir: baseDir, URLPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

func (l *Local) Put(_ context.Context, r io.Reader, in PutInput) (PutResult, error) {
	ext, err := ImageExt(in.Filename)
	if err != nil {
		return PutResult{}, err
	}
	if err := os.MkdirAll(l.BaseDir, 0o755); err != nil {
		return PutResult{}, err
	}

	key := uuid.NewString() + ext
	f, err := os.OpenFile(filepath.Join(l.BaseDir, key), os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return PutResult{}, err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(f.Name())
		return PutResult{}, fmt.Errorf("storage: write %s: %w", key, err)
	}
	return PutResult{Key: key, URL: l.URLPrefix + "/" + key}, nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.Join(l.BaseDir, filepath.Base(key)))
}

func (l *Local) String() string { return fmt.Sprintf("local(%s)", l.BaseDir) }
