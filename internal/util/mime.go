package util

import (
	"path/filepath"
	"strings"
)

const OctetStream = "application/octet-stream"

// formatExtensions maps image.Decode format names to stored extensions.
var formatExtensions = map[string]string{
	"png":  "png",
	"jpeg": "jpg",
	"gif":  "gif",
	"webp": "webp",
}

// ExtensionForFormat returns the storage extension for a sniffed image format.
func ExtensionForFormat(format string) (string, bool) {
	ext, ok := formatExtensions[strings.ToLower(strings.TrimSpace(format))]
	return ext, ok
}

// ContentTypeForName derives the served content type from a stored file's extension.
func ContentTypeForName(name string) string {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return OctetStream
	}
}
