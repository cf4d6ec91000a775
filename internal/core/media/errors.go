package media

import "errors"

var (
	// ErrImageTooLarge is returned when an upload exceeds MaxImageSize
	ErrImageTooLarge = errors.New("image exceeds size limit")

	// ErrUnsupportedExtension is returned when the file name has no allowed image extension
	ErrUnsupportedExtension = errors.New("unsupported image extension")

	// ErrInvalidImage is returned when the upload cannot be decoded as an image
	ErrInvalidImage = errors.New("upload is not a valid image")

	// ErrInvalidReference is returned when a stored reference escapes the media root
	ErrInvalidReference = errors.New("invalid media reference")
)

// IsValidationError checks if the error rejects the upload itself
func IsValidationError(err error) bool {
	return errors.Is(err, ErrImageTooLarge) ||
		errors.Is(err, ErrUnsupportedExtension) ||
		errors.Is(err, ErrInvalidImage)
}
