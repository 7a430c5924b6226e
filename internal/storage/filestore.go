// Package storage keeps uploaded files on the local disk under MEDIA_ROOT.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// Subdirectories created under the media root.
const (
	DirManuscripts = "manuscripts"
	DirReviews     = "reviews"
	DirUploads     = "uploads"
)

// AllowedExtensions are the manuscript formats accepted for upload.
var AllowedExtensions = []string{".pdf", ".doc", ".docx", ".rtf", ".txt"}

var (
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrTooLarge        = errors.New("file is too large")
	ErrEmptyFile       = errors.New("file is empty")
	ErrInvalidPath     = errors.New("invalid file path")
)

// FileStore writes files beneath a single root directory and refuses to read outside it.
type FileStore struct {
	dir      string
	root     *os.Root
	maxBytes int64
}

// NewFileStore creates the media root and its subdirectories if needed.
func NewFileStore(dir string, maxBytes int64) (*FileStore, error) {
	for _, sub := range []string{DirManuscripts, DirReviews, DirUploads} {
		if err := os.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("create media dir %s: %w", sub, err)
		}
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open media root: %w", err)
	}
	return &FileStore{dir: dir, root: root, maxBytes: maxBytes}, nil
}

// Save stores r under subdir using a sanitised form of filename and returns the
// slash-separated path relative to the media root. An existing file is never
// overwritten; a short random prefix is added instead.
func (s *FileStore) Save(subdir, filename string, r io.Reader) (string, error) {
	name := SanitizeFilename(filename)
	ext := strings.ToLower(path.Ext(name))
	if !slices.Contains(AllowedExtensions, ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	f, rel, err := s.createUnique(subdir, name)
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, io.LimitReader(r, s.maxBytes+1))
	closeErr := f.Close()
	switch {
	case err != nil:
		err = fmt.Errorf("write %s: %w", rel, err)
	case closeErr != nil:
		err = fmt.Errorf("close %s: %w", rel, closeErr)
	case n > s.maxBytes:
		err = ErrTooLarge
	case n == 0:
		err = ErrEmptyFile
	}
	if err != nil {
		_ = s.root.Remove(filepath.FromSlash(rel))
		return "", err
	}
	return rel, nil
}

func (s *FileStore) createUnique(subdir, name string) (*os.File, string, error) {
	candidate := name
	for attempt := 0; attempt < 5; attempt++ {
		rel := path.Join(subdir, candidate)
		f, err := s.root.OpenFile(filepath.FromSlash(rel), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return f, rel, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", fmt.Errorf("create %s: %w", rel, err)
		}
		candidate = uuid.NewString()[:8] + "_" + name
	}
	return nil, "", fmt.Errorf("create %s: no free file name", name)
}

// Open returns the file at a path relative to the media root.
func (s *FileStore) Open(rel string) (*os.File, error) {
	clean, err := s.clean(rel)
	if err != nil {
		return nil, err
	}
	f, err := s.root.Open(clean)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		// escapes via symlinks surface as a plain error from os.Root
		return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if info.IsDir() {
		f.Close()
		return nil, ErrInvalidPath
	}
	return f, nil
}

// Remove deletes a stored file; a missing file is not an error.
func (s *FileStore) Remove(rel string) error {
	clean, err := s.clean(rel)
	if err != nil {
		return err
	}
	if err := s.root.Remove(clean); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) Close() error {
	return s.root.Close()
}

func (s *FileStore) clean(rel string) (string, error) {
	rel = strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "/")
	if rel == "" {
		return "", ErrInvalidPath
	}
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", ErrInvalidPath
	}
	return filepath.FromSlash(clean), nil
}

// SanitizeFilename keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore. The extension is lower-cased.
func SanitizeFilename(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	var b strings.Builder
	for _, r := range stem {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	name = strings.Trim(name, "._")
	if name == "" {
		name = "manuscript"
	}
	return name + strings.ToLower(ext)
}
