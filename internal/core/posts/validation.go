package posts

import (
	"errors"
	"strings"
	"unicode/utf8"

	"Scribe/internal/core/media"
)

const (
	MinTitleLength   = 5
	MaxTitleLength   = 100
	MinContentLength = 10
	MaxContentLength = 5000
)

// ValidateTitle checks the trimmed minimum and untrimmed maximum length of a title
func ValidateTitle(title string) error {
	if utf8.RuneCountInString(strings.TrimSpace(title)) < MinTitleLength {
		return NewValidationError("title", "Title must be at least 5 characters long.")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return NewValidationError("title", "Title cannot exceed 100 characters.")
	}
	return nil
}

// ValidateContent checks the trimmed minimum and untrimmed maximum length of a post body
func ValidateContent(content string) error {
	if utf8.RuneCountInString(strings.TrimSpace(content)) < MinContentLength {
		return NewValidationError("content", "Content must be at least 10 characters long.")
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return NewValidationError("content", "Content cannot exceed 5000 characters.")
	}
	return nil
}

// imageError converts a media rejection into a field error
func imageError(err error) error {
	switch {
	case errors.Is(err, media.ErrImageTooLarge):
		return NewValidationError("image", "Image file size cannot exceed 5MB.")
	case errors.Is(err, media.ErrUnsupportedExtension):
		return NewValidationError("image", "Image must be a JPG, JPEG, PNG, or GIF file.")
	case errors.Is(err, media.ErrInvalidImage):
		return NewValidationError("image", "Upload a valid image. The file you uploaded was either not an image or a corrupted image.")
	default:
		return err
	}
}
