// Package upload stores exhibitor files (logos, artwork) and hands back
// the URL that goes into the configuration response.
package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type Uploader interface {
	Save(ctx context.Context, filename string, content io.Reader) (string, error)
}

// LocalUploader writes files to a directory on disk and serves them
// under baseURL. Filenames are randomized so exhibitors cannot clobber
// each other's uploads.
type LocalUploader struct {
	dir     string
	baseURL string
}

func NewLocalUploader(dir, baseURL string) (*LocalUploader, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll(%q) -> %w", dir, err)
	}

	return &LocalUploader{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

func (u *LocalUploader) Save(_ context.Context, filename string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(u.dir, name))
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer f.Close()

	if _, err = io.Copy(f, content); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return u.baseURL + "/" + name, nil
}
