package core

import "strings"

// CleanString strips surrounding whitespace from user input. Pass true to
// also lowercase the result, for fields matched case-insensitively such as
// emails and roles.
func CleanString(s string, lower ...bool) string {
	cleaned := strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		cleaned = strings.ToLower(cleaned)
	}
	return cleaned
}
