package common

import (
	"fmt"
	"slices"
	"strings"

	"resumelens/internal/errors"
)

// ValidateOutputFormat checks format against the configured list. An empty
// list allows any format the registry knows.
func ValidateOutputFormat(format string, supportedFormats []string) error {
	if len(supportedFormats) == 0 || slices.Contains(supportedFormats, format) {
		return nil
	}
	return errors.NewValidationError(errors.ErrCodeInvalidFormat,
		fmt.Sprintf("unsupported output format %q (supported: %s)", format, strings.Join(supportedFormats, ", ")), nil)
}

// ValidateTopKeywords rejects negative keyword counts. Zero selects the
// configured default.
func ValidateTopKeywords(n int) error {
	if n < 0 {
		return errors.NewInvalidArgumentError(fmt.Sprintf("top keywords must not be negative, got %d", n))
	}
	return nil
}
