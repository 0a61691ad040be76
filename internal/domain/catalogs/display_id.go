// Package catalogs holds logic shared by the catalog packages.
package catalogs

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"allot/internal/core/apperror"
)

// NextDisplayID derives the display id for a counterparty: first letter of
// the name plus a zero-padded sequence number unique per first-letter
// bucket (D001, D002, ...). lastCode is the highest existing code in that
// bucket, or empty when the bucket is new. Once assigned, a display id is
// never regenerated.
func NextDisplayID(name, lastCode string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperror.NewValidation("name is required").WithDetail("field", "name")
	}

	letter := unicode.ToUpper(rune(trimmed[0]))
	if letter < 'A' || letter > 'Z' {
		return "", apperror.NewValidation("name must start with a letter").
			WithDetail("field", "name").
			WithDetail("value", trimmed)
	}

	seq := 0
	if lastCode != "" {
		n, err := strconv.Atoi(lastCode[1:])
		if err != nil {
			return "", apperror.NewInternal(fmt.Errorf("malformed display id %q: %w", lastCode, err))
		}
		seq = n
	}

	return fmt.Sprintf("%c%03d", letter, seq+1), nil
}

// DisplayIDPrefix returns the bucket letter for a name, used to query the
// highest existing code in that bucket.
func DisplayIDPrefix(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ""
	}
	return string(unicode.ToUpper(rune(trimmed[0])))
}
