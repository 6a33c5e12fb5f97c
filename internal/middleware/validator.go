package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// maxAccountLength matches the longest valid email address.
const maxAccountLength = 254

// Input validation and sanitization utilities

// ValidateAccount checks an email address or username before it is sent upstream.
func ValidateAccount(account string) error {
	if account == "" {
		return fmt.Errorf("account cannot be empty")
	}
	if utf8.RuneCountInString(account) > maxAccountLength {
		return fmt.Errorf("account is too long (max %d characters)", maxAccountLength)
	}
	if strings.ContainsAny(account, "/\\?#") {
		return fmt.Errorf("account contains invalid characters")
	}
	for _, r := range account {
		if r < 32 || r == 127 || r == ' ' {
			return fmt.Errorf("account contains whitespace or control characters")
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
