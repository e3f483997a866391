// Package encoding provides text encoding utilities for script resources.
package encoding

import (
	"bytes"
	"path"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DecodeText converts a script resource to UTF-8.
// A leading UTF-8 byte order mark is removed. Input that is not valid UTF-8
// is treated as Windows-1252, which is what older tools saved configs as.
// Returns the input unchanged if conversion fails.
func DecodeText(data []byte) []byte {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data
	}

	result, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return data
	}
	return result
}

// EncodeText converts UTF-8 text to Windows-1252 for tools that expect it.
// Characters with no Windows-1252 form make it return the input unchanged.
func EncodeText(s string) []byte {
	result, _, err := transform.Bytes(charmap.Windows1252.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// NormalizePath normalizes a resource path for case-insensitive lookup.
func NormalizePath(p string) string {
	// Convert backslashes to forward slashes
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(path.Clean("/"+p), "/")
	// Lowercase for case-insensitive matching
	return strings.ToLower(p)
}
