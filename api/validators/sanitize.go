package validators

import "strings"

// SanitizeString trims whitespace and caps the length of free-text input.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// SanitizeEmail normalizes an email for storage: trimmed and lowercased.
func SanitizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// NullableText trims the input and converts empty strings to nil.
func NullableText(input *string, maxLen int) *string {
	if input == nil {
		return nil
	}
	trimmed := SanitizeString(*input, maxLen)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
