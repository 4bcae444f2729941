package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// MaxURLLength bounds the image URLs accepted from upstreams.
const MaxURLLength = 2048

// ValidateCount validates a requested batch size.
// A non-positive count is rejected; max <= 0 disables the upper bound.
func ValidateCount(count, max int) error {
	if count <= 0 {
		return New(ErrCodeInvalidInput, "count must be positive, got %d", count)
	}
	if max > 0 && count > max {
		return New(ErrCodeInvalidInput, "count %d exceeds maximum %d", count, max)
	}
	return nil
}

// ValidateImageURL validates a URL handed back to callers as a wallpaper asset.
//
// Validation rules:
//   - URL cannot be empty
//   - Maximum length of MaxURLLength characters
//   - No control characters or whitespace
//   - Must parse as an absolute http or https URL with a host
func ValidateImageURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidURL, "image URL cannot be empty")
	}
	if len(raw) > MaxURLLength {
		return New(ErrCodeInvalidURL, "image URL too long (max %d characters)", MaxURLLength)
	}
	for _, r := range raw {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidURL, "image URL contains invalid characters")
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidURL, err, "image URL does not parse")
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return New(ErrCodeInvalidURL, "image URL must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return New(ErrCodeInvalidURL, "image URL has no host")
	}
	return nil
}
