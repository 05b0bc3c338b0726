package filestore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyFile = errors.New("file is empty")
	ErrNotImage  = errors.New("only image files allowed")
)

// PublicPrefix is the URL path the upload directory is served under.
const PublicPrefix = "/uploads/"

// Local writes uploads into a directory on disk.
type Local struct {
	dir   string
	newID func() string
}

func NewLocal(dir string) *Local {
	if strings.TrimSpace(dir) == "" {
		dir = "uploads"
	}
	return &Local{dir: dir, newID: uuid.NewString}
}

func (l *Local) Dir() string { return l.dir }

// UploadAvatar stores r as <uuid><ext> and returns its relative URL.
func (l *Local) UploadAvatar(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrEmptyFile
		}
		return "", err
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/") {
		return "", ErrNotImage
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := l.newID() + extension(filename)
	target := filepath.Join(l.dir, name)

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, br); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("close %s: %w", name, err)
	}

	return PublicPrefix + name, nil
}

// extension keeps everything from the last dot of the base name.
func extension(filename string) string {
	base := filepath.Base(filepath.ToSlash(filename))
	i := strings.LastIndex(base, ".")
	if i < 0 || base == "." {
		return ""
	}
	return base[i:]
}
