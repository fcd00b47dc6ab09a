// Package scribd knows what a Scribd document URL looks like and which
// page elements carry document content.
package scribd

import (
	"net/url"
	"regexp"
	"strings"
)

// Host is the expected host substring for document URLs.
const Host = "scribd.com"

// documentPathRe matches the numeric document segment of a Scribd URL,
// e.g. /document/123456/some-title.
var documentPathRe = regexp.MustCompile(`/document/(\d+)/`)

// ValidateURL checks that a candidate string is a well-formed Scribd
// document URL. It never fails hard: the result is always a verdict plus
// a human-readable reason.
func ValidateURL(raw string) (bool, string) {
	if strings.TrimSpace(raw) == "" {
		return false, "URL is empty"
	}
	if !strings.Contains(strings.ToLower(raw), Host) {
		return false, "URL is not a scribd.com address"
	}
	if !documentPathRe.MatchString(raw) {
		return false, "URL does not contain a numeric /document/<id>/ path"
	}
	return true, "URL valid"
}

// DocumentID extracts the numeric document identifier from a URL.
// Returns the empty string when the URL has no document segment.
func DocumentID(raw string) string {
	m := documentPathRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return m[1]
}

// NormalizeURL trims whitespace, defaults the scheme to https and strips
// query and fragment parts so the same document always maps to the same
// address.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return u.Scheme + "://" + u.Host + u.Path
}
