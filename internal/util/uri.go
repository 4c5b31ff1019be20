package util

import (
	"net/url"
	"strings"
)

var uriComponentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s the way browsers encode a URI
// component. Rich text boxes store their HTML in this form.
func EncodeURIComponent(s string) string {
	return uriComponentUnescaper.Replace(url.QueryEscape(s))
}
