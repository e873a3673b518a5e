package utils

import "strings"

// ValidateAPIKey checks that an API key is present and non-empty. This is a
// presence check, not authentication: no format, scope, or external
// verification is performed.
func ValidateAPIKey(apiKey string) (bool, string) {
	if strings.TrimSpace(apiKey) == "" {
		return false, "API key is required"
	}
	return true, ""
}
