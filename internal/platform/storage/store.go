// Package storage provides the sandboxed filesystem store for uploaded
// artifacts (mammogram images, generated documents). Every path handed to
// the store, stored names and caller-supplied subfolders alike, is resolved
// through Resolve, which enforces the containment invariant: no resolved path
// ever escapes the configured root.
package storage

import (
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// MaxFileSize is the maximum allowed artifact size in bytes (100 MB).
const MaxFileSize = 100 * 1024 * 1024

// ErrFileTooLarge is returned by Store when content exceeds MaxFileSize.
var ErrFileTooLarge = fmt.Errorf("file exceeds maximum allowed size of %d bytes", MaxFileSize)

// FileStore stores binary artifacts under a single sandboxed root directory.
// Stored artifacts are addressed by a relative, forward-slash path; that
// relative path is the only durable identifier persisted elsewhere.
//
// Concurrent uploads are safe without locking: every artifact gets a fresh
// UUID-based name before the filesystem is touched, so two stores never
// target the same file.
type FileStore struct {
	root    string
	baseURL string
	logger  zerolog.Logger
}

// NewFileStore creates a store rooted at root, creating the directory if
// needed. baseURL, when non-empty, prefixes public URLs; root is made
// absolute so containment checks do not depend on the working directory.
func NewFileStore(root, baseURL string, logger zerolog.Logger) (*FileStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, &Error{Kind: KindIO, Path: root, Err: err}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, &Error{Kind: KindIO, Path: abs, Err: err}
	}
	return &FileStore{root: abs, baseURL: baseURL, logger: logger}, nil
}

// Root returns the absolute sandbox root.
func (s *FileStore) Root() string { return s.root }

// Store writes the content of r into subfolder under the root and returns
// the artifact's relative path (forward slashes, regardless of host OS).
//
// The stored name is a fresh UUID plus the extension derived from
// originalName; the original name itself is never used, so nothing leaks and
// identical inputs always produce distinct artifacts. Empty content is
// rejected with ErrEmptyUpload.
func (s *FileStore) Store(r io.Reader, originalName, subfolder string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return "", &Error{Kind: KindIO, Path: originalName, Err: err}
	}
	if len(data) == 0 {
		return "", ErrEmptyUpload
	}
	if int64(len(data)) > MaxFileSize {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	rel := path.Join(filepath.ToSlash(subfolder), uuid.New().String()+ext)

	abs, err := Resolve(s.root, rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", &Error{Kind: KindIO, Path: rel, Err: err}
	}

	// O_EXCL backs up the no-overwrite guarantee the UUID name provides.
	f, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", &Error{Kind: KindIO, Path: rel, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return "", &Error{Kind: KindIO, Path: rel, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &Error{Kind: KindIO, Path: rel, Err: err}
	}
	return rel, nil
}

// Load opens the artifact at the given relative path. Missing artifacts fail
// with KindNotFound; artifacts that exist but cannot be read fail with
// KindUnreadable.
func (s *FileStore) Load(relativePath string) (io.ReadCloser, error) {
	abs, err := Resolve(s.root, relativePath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &Error{Kind: KindNotFound, Path: relativePath, Err: err}
		}
		return nil, &Error{Kind: KindUnreadable, Path: relativePath, Err: err}
	}
	if info.IsDir() {
		return nil, &Error{Kind: KindUnreadable, Path: relativePath, Err: fmt.Errorf("path is a directory")}
	}

	f, err := os.Open(abs)
	if err != nil {
		return nil, &Error{Kind: KindUnreadable, Path: relativePath, Err: err}
	}
	return f, nil
}

// Delete removes the artifact if present. Deleting an artifact that is
// already gone is not an error; it is logged and ignored.
func (s *FileStore) Delete(relativePath string) error {
	abs, err := Resolve(s.root, relativePath)
	if err != nil {
		return err
	}

	if err := os.Remove(abs); err != nil {
		if os.IsNotExist(err) {
			s.logger.Debug().Str("path", relativePath).Msg("delete of missing artifact ignored")
			return nil
		}
		return &Error{Kind: KindIO, Path: relativePath, Err: err}
	}
	return nil
}

// DeleteAll wipes everything under the root and recreates the empty root
// directory. Destructive; intended for tests and operational resets, never
// for request handling.
func (s *FileStore) DeleteAll() error {
	if err := os.RemoveAll(s.root); err != nil {
		return &Error{Kind: KindIO, Path: s.root, Err: err}
	}
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return &Error{Kind: KindIO, Path: s.root, Err: err}
	}
	s.logger.Info().Str("root", s.root).Msg("storage root wiped")
	return nil
}

// AbsolutePath maps a relative artifact path to its absolute filesystem
// path. Pure; the artifact need not exist.
func (s *FileStore) AbsolutePath(relativePath string) (string, error) {
	return Resolve(s.root, relativePath)
}

// PublicURL maps a relative artifact path to its public URL with exactly one
// separating slash. Without a configured base URL the relative path is
// returned unchanged.
func (s *FileStore) PublicURL(relativePath string) string {
	if s.baseURL == "" {
		return relativePath
	}
	return strings.TrimRight(s.baseURL, "/") + "/" + strings.TrimLeft(relativePath, "/")
}
