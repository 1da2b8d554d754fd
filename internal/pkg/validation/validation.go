package validation

import (
	"net/url"
	"regexp"
	"strings"
)

// Same shape check the frontend applies: /^[^\s@]+@[^\s@]+\.[^\s@]+$/
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ISO 3166-1 alpha-2, or the GLOBAL marker.
var countryRe = regexp.MustCompile(`^([A-Z]{2}|GLOBAL)$`)

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// IsValidURL accepts absolute http(s) URLs with a host.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

func IsValidCountry(code string) bool {
	return countryRe.MatchString(code)
}

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
