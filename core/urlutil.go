package core

import (
	"fmt"
	"net/url"
	"strings"
)

// ReencodeURL re-encodes URLs for RFC3986 compliance; as CurseForge URLs aren't properly encoded
func ReencodeURL(u string) (string, error) {
	u = strings.TrimSpace(u)
	// Go's URL library isn't entirely RFC3986 compliant :(
	// Manually replace [ and ] with %5B and %5D
	u = strings.ReplaceAll(u, "[", "%5B")
	u = strings.ReplaceAll(u, "]", "%5D")
	// The CDN hands out file names with raw spaces
	u = strings.ReplaceAll(u, " ", "%20")
	parsed, err := url.Parse(u)
	if err != nil {
		return "", fmt.Errorf("failed to parse url: %s, %v", u, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("unsupported url scheme %q in %s", parsed.Scheme, u)
	}
	return parsed.String(), nil
}

// DefaultFileName derives a local file name from the last path segment of a download URL
func DefaultFileName(u string) string {
	u = strings.TrimSpace(u)
	name := u[strings.LastIndex(u, "/")+1:]
	if parsed, err := url.Parse(strings.ReplaceAll(u, " ", "%20")); err == nil && parsed.Path != "" {
		escaped := parsed.EscapedPath()
		name = escaped[strings.LastIndex(escaped, "/")+1:]
	} else if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	// Never let the server pick a directory for us
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	if name == "" || name == "." || name == ".." {
		return "serverpack.zip"
	}
	return name
}
