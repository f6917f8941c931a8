package util

import "strings"

// SanitizePostgresText drops invalid UTF-8 and NUL bytes, both of which are
// rejected by text columns.
func SanitizePostgresText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	return strings.ReplaceAll(sanitized, "\x00", "")
}

// CollapseWhitespace joins all whitespace runs, including line breaks, into
// single spaces and trims the result.
func CollapseWhitespace(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
