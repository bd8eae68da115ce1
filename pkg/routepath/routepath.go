// Package routepath normalizes and resolves URL paths used for navigation.
package routepath

import (
	"errors"
	"net/url"
	"strings"
)

// Path errors.
var (
	ErrInvalidPath           = errors.New("invalid path")
	ErrBackslashInPath       = errors.New("path contains backslash")
	ErrNullByteInPath        = errors.New("path contains null byte")
	ErrInvalidPercentEscape  = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot       = errors.New("path escapes root via ..")
	ErrEncodedSlashInSegment = errors.New("encoded slash (%2F) in segment")
)

// Result is a canonical path with its query string.
type Result struct {
	// Path is the canonical path (without query string).
	Path string

	// Query is the query string (without leading "?").
	Query string

	// Changed indicates if the path was modified during canonicalization.
	Changed bool
}

// String returns the path with its query, if any.
func (r Result) String() string {
	if r.Query == "" {
		return r.Path
	}
	return r.Path + "?" + r.Query
}

// Canonicalize normalizes a URL path:
//   - a leading "/" is added and a trailing one removed (except for "/")
//   - repeated slashes collapse (/a//b → /a/b)
//   - "." segments are dropped and ".." segments pop their parent
//   - a "#fragment" is discarded
//
// Paths with a backslash, a NUL byte, an invalid percent escape, or a ".."
// above the root are rejected. The query string is kept verbatim.
func Canonicalize(input string) (Result, error) {
	input, _, _ = strings.Cut(input, "#")
	if input == "" {
		return Result{Path: "/", Changed: true}, nil
	}

	path, query, _ := strings.Cut(input, "?")

	if strings.Contains(path, "\\") {
		return Result{}, ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return Result{}, ErrNullByteInPath
	}
	if strings.Contains(path, "%") {
		if err := validatePercentEscapes(path); err != nil {
			return Result{}, err
		}
	}

	original := path
	segments := strings.Split(path, "/")
	out := make([]string, 0, len(segments))
	for _, seg := range segments {
		switch seg {
		case "", ".":
			continue
		case "..":
			if len(out) == 0 {
				return Result{}, ErrPathEscapesRoot
			}
			out = out[:len(out)-1]
		default:
			out = append(out, seg)
		}
	}

	path = "/" + strings.Join(out, "/")
	return Result{Path: path, Query: query, Changed: path != original}, nil
}

// Resolve resolves target against base the way links do: an absolute
// target replaces base, a relative one is appended to it, and the result
// is canonicalized. Full URLs and protocol-relative targets are rejected.
//
//	Resolve("/dashboard", "profile/alice") // "/dashboard/profile/alice"
//	Resolve("/dashboard/settings", "..")   // "/dashboard"
func Resolve(base, target string) (Result, error) {
	if strings.Contains(target, "://") || strings.HasPrefix(target, "//") {
		return Result{}, ErrInvalidPath
	}
	if strings.HasPrefix(target, "/") {
		return Canonicalize(target)
	}
	if target == "" {
		return Canonicalize(base)
	}
	b, _, _ := strings.Cut(base, "?")
	return Canonicalize(strings.TrimSuffix(b, "/") + "/" + target)
}

// Join joins segments into a canonical path. Invalid input yields "/".
func Join(parts ...string) string {
	r, err := Canonicalize("/" + strings.Join(parts, "/"))
	if err != nil {
		return "/"
	}
	return r.Path
}

// Split returns the segments of a canonical path. The root has none.
func Split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// DecodeSegment decodes a single path segment. Unless the segment belongs
// to a catch-all, a decoded "/" is rejected.
func DecodeSegment(segment string, isCatchAll bool) (string, error) {
	decoded, err := url.PathUnescape(segment)
	if err != nil {
		return "", ErrInvalidPercentEscape
	}
	if !isCatchAll && strings.Contains(decoded, "/") {
		return "", ErrEncodedSlashInSegment
	}
	return decoded, nil
}

// validatePercentEscapes checks that all percent-escapes are %XX with hex digits.
func validatePercentEscapes(path string) error {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHexDigit(path[i+1]) || !isHexDigit(path[i+2]) {
			return ErrInvalidPercentEscape
		}
		i += 2
	}
	return nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// SplitQuery splits input into path and query (without the leading "?").
func SplitQuery(input string) (path, query string) {
	path, query, _ = strings.Cut(input, "?")
	return path, query
}
