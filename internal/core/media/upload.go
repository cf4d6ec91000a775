package media

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// MaxImageSize is the largest accepted image upload (5 MB)
const MaxImageSize = 5 * 1024 * 1024

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"gif":  {},
}

// Upload is an image submitted with a post
type Upload struct {
	Content  io.Reader
	Filename string
	Size     int64
}

// Extension returns the lower-cased extension of the file name without the dot
func (u *Upload) Extension() string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(u.Filename)), ".")
}

// ValidateMeta checks size and extension before any bytes are read
func ValidateMeta(u *Upload) error {
	if u.Size > MaxImageSize {
		return ErrImageTooLarge
	}
	if _, ok := allowedExtensions[u.Extension()]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedExtension, u.Extension())
	}
	return nil
}

// readImage reads at most MaxImageSize bytes and checks they decode as an image
func readImage(u *Upload) ([]byte, error) {
	if err := ValidateMeta(u); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(u.Content, MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	if _, err := imaging.Decode(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return data, nil
}
