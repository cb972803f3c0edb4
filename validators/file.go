package validators

import (
	"errors"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

var (
	ErrNoFile              = errors.New("no file provided")
	ErrEmptyFile           = errors.New("file is empty")
	ErrFileTooLarge        = errors.New("file too large")
	ErrFileNameTooLong     = errors.New("file name is too long")
	ErrFileTypeUnsupported = errors.New("unsupported file type")
)

const maxFileNameSize = 255

// Posters are small, no reason to accept more
const maxPosterSize = 10 << 20

// VideoValidator sniffs the actual content instead of trusting the
// multipart headers and returns the detected mime type. The reader is
// rewound before returning.
func VideoValidator(r io.ReadSeeker, size int64, name string) (string, error) {
	if r == nil {
		return "", ErrNoFile
	}

	if size <= 0 {
		return "", ErrEmptyFile
	}

	if len(name) > maxFileNameSize {
		return "", ErrFileNameTooLong
	}

	maxFileSize := viper.GetInt64("upload.max_size")
	if maxFileSize > 0 && size > maxFileSize {
		return "", ErrFileTooLarge
	}

	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	allowed := viper.GetStringSlice("upload.allowed_types")
	if len(allowed) == 0 {
		if !strings.HasPrefix(mime.String(), "video/") {
			return "", ErrFileTypeUnsupported
		}
		return mime.String(), nil
	}

	for _, t := range allowed {
		if mime.Is(t) {
			return mime.String(), nil
		}
	}

	return "", ErrFileTypeUnsupported
}

// PosterValidator does the same content sniff for the optional poster
// image.
func PosterValidator(r io.ReadSeeker, size int64, name string) (string, error) {
	if r == nil {
		return "", ErrNoFile
	}

	if size <= 0 {
		return "", ErrEmptyFile
	}

	if len(name) > maxFileNameSize {
		return "", ErrFileNameTooLong
	}

	if size > maxPosterSize {
		return "", ErrFileTooLarge
	}

	mime, err := mimetype.DetectReader(r)
	if err != nil {
		return "", err
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	if !strings.HasPrefix(mime.String(), "image/") {
		return "", ErrFileTypeUnsupported
	}

	return mime.String(), nil
}

// IsValidationError reports whether err came from input validation, so
// handlers can map it to a 400 instead of a 500.
func IsValidationError(err error) bool {
	for _, v := range []error{
		ErrNoTitle, ErrBadSchema, ErrInvalidFields,
		ErrNoFile, ErrEmptyFile, ErrFileTooLarge,
		ErrFileNameTooLong, ErrFileTypeUnsupported,
	} {
		if errors.Is(err, v) {
			return true
		}
	}

	return false
}
