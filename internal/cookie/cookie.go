// Package cookie builds and parses Set-Cookie attribute strings for the
// session credential. Values are percent-encoded so tokens containing ';',
// '=', or non-ASCII characters survive the round trip.
package cookie

import (
	"net/url"
	"strconv"
	"strings"
)

// SameSite values accepted by Attributes.
const (
	SameSiteLax    = "Lax"
	SameSiteStrict = "Strict"
	SameSiteNone   = "None"
)

// Attributes controls the security flags written with a cookie.
type Attributes struct {
	HTTPOnly *bool
	Secure   *bool
	SameSite string
	Domain   string
	Path     string

	// MaxAgeSeconds is omitted when nil. Zero expires the cookie
	// immediately, which is how logout clears the session.
	MaxAgeSeconds *int
}

// Serialize renders a Set-Cookie header value. Defaults: HttpOnly, Secure,
// SameSite=Lax, Path=/.
func Serialize(name, value string, attrs Attributes) string {
	parts := []string{name + "=" + url.QueryEscape(value)}

	if attrs.MaxAgeSeconds != nil {
		parts = append(parts, "Max-Age="+strconv.Itoa(*attrs.MaxAgeSeconds))
	}

	path := attrs.Path
	if path == "" {
		path = "/"
	}
	parts = append(parts, "Path="+path)

	if attrs.Domain != "" {
		parts = append(parts, "Domain="+attrs.Domain)
	}
	if attrs.HTTPOnly == nil || *attrs.HTTPOnly {
		parts = append(parts, "HttpOnly")
	}
	if attrs.Secure == nil || *attrs.Secure {
		parts = append(parts, "Secure")
	}

	sameSite := attrs.SameSite
	if sameSite == "" {
		sameSite = SameSiteLax
	}
	parts = append(parts, "SameSite="+sameSite)

	return strings.Join(parts, "; ")
}

// Parse extracts name/value pairs from a Cookie request header. Malformed
// fragments are skipped rather than failing the whole parse.
func Parse(header string) map[string]string {
	out := make(map[string]string)
	if header == "" {
		return out
	}

	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		idx := strings.Index(part, "=")
		if idx <= 0 {
			continue
		}
		name := part[:idx]
		value, err := url.QueryUnescape(part[idx+1:])
		if err != nil {
			continue
		}
		out[name] = value
	}
	return out
}
