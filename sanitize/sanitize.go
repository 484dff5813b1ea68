// Package sanitize validates and normalizes untrusted input before it
// reaches the cache or the Places API. All functions are pure and total:
// invalid input yields false or a safe default, never a panic.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	PlaceIDMinLenExternal = 10
	PlaceIDMaxLenExternal = 100

	CredentialMinLen = 30
	CredentialMaxLen = 50
)

// tokenPattern is the shared character class for place IDs and API keys.
var tokenPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// hexColorPattern matches 3- or 6-digit hex colors with a leading '#'.
var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidPlaceID reports whether s is a well-formed place ID token.
func ValidPlaceID(s string) bool {
	return tokenPattern.MatchString(s)
}

// ValidPlaceIDExternal applies the stricter bound used at the network
// boundary: token format plus a length between 10 and 100.
func ValidPlaceIDExternal(s string) bool {
	if len(s) < PlaceIDMinLenExternal || len(s) > PlaceIDMaxLenExternal {
		return false
	}
	return tokenPattern.MatchString(s)
}

// ValidCredential reports whether s looks like a Places API key:
// 30-50 characters from the token character class.
func ValidCredential(s string) bool {
	if len(s) < CredentialMinLen || len(s) > CredentialMaxLen {
		return false
	}
	return tokenPattern.MatchString(s)
}

// CoerceEnum returns value if it appears in allowed, else def.
func CoerceEnum(value string, allowed []string, def string) string {
	for _, a := range allowed {
		if value == a {
			return value
		}
	}
	return def
}

// CoerceColor returns a normalized lowercase hex color, or "" if value is
// not a valid hex color.
func CoerceColor(value string) string {
	value = strings.TrimSpace(value)
	if !hexColorPattern.MatchString(value) {
		return ""
	}
	return strings.ToLower(value)
}

// CoerceNonNegativeInt parses value as a non-negative integer, falling back
// to def on malformed or negative input.
func CoerceNonNegativeInt(value string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return def
	}
	return n
}
