package media

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// postImageDir is the sub-directory of the media root holding post images
const postImageDir = "posts"

// Store persists post images and hands back a reference to store on the post
type Store interface {
	Save(ctx context.Context, upload *Upload) (string, error)
	Delete(ctx context.Context, ref string) error
	URL(ref string) string
}

// LocalStore keeps images on the local filesystem under a root directory
type LocalStore struct {
	logger  *slog.Logger
	root    string
	baseURL string
}

// NewLocalStore creates a store rooted at dir, creating the directory if needed.
// baseURL is the path the directory is served under, e.g. "/media/".
func NewLocalStore(dir, baseURL string, logger *slog.Logger) (*LocalStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Join(dir, postImageDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStore{root: dir, baseURL: baseURL, logger: logger}, nil
}

// Save validates the upload and writes it as posts/<uuid>.<ext>
func (s *LocalStore) Save(ctx context.Context, upload *Upload) (string, error) {
	data, err := readImage(upload)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := filepath.ToSlash(filepath.Join(postImageDir, uuid.NewString()+"."+upload.Extension()))
	if err := os.WriteFile(filepath.Join(s.root, filepath.FromSlash(ref)), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	s.logger.Debug("image stored", "ref", ref, "bytes", len(data))
	return ref, nil
}

// Delete removes a stored image. Missing files are not an error.
func (s *LocalStore) Delete(ctx context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	return nil
}

// URL returns the public path of a stored image
func (s *LocalStore) URL(ref string) string {
	return s.baseURL + strings.TrimPrefix(ref, "/")
}

// Root returns the directory images are stored under
func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) resolve(ref string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(ref))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", ErrInvalidReference
	}
	return filepath.Join(s.root, clean), nil
}
