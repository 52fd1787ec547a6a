package storage

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

var (
	ErrFileTooLarge    = errors.New("file exceeds maximum size")
	ErrInvalidMimeType = errors.New("file type not allowed")
	ErrEmptyFile       = errors.New("file is empty")
)

// MaxAvatarSize bounds profile image uploads.
const MaxAvatarSize = 5 * 1024 * 1024

// AllowedAvatarTypes are the MIME types accepted for profile images.
var AllowedAvatarTypes = []string{"image/jpeg", "image/png"}

// ValidateImage reads the file, enforces the size bound, and sniffs the
// MIME type from content (magic bytes, never the filename). Returns the
// buffered bytes and the detected type.
func ValidateImage(reader io.Reader, maxSize int64) ([]byte, string, error) {
	// Read one byte past maxSize to detect oversized files
	limited := io.LimitReader(reader, maxSize+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read file: %w", err)
	}

	if len(data) == 0 {
		return nil, "", ErrEmptyFile
	}
	if int64(len(data)) > maxSize {
		return nil, "", ErrFileTooLarge
	}

	mimeType := http.DetectContentType(data)
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}

	for _, t := range AllowedAvatarTypes {
		if t == mimeType {
			return data, mimeType, nil
		}
	}
	return nil, "", ErrInvalidMimeType
}

// ExtensionForMime returns the file extension for a MIME type
func ExtensionForMime(mimeType string) string {
	switch mimeType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	default:
		return ""
	}
}
