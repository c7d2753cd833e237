package util

import (
	"github.com/gabriel-vasile/mimetype"
)

// DetectContentType sniffs the MIME type from payload bytes. Used when the
// package's content type table has no answer for a part.
func DetectContentType(b []byte) string {
	mime := mimetype.Detect(b)
	if mime == nil {
		return "application/octet-stream"
	}
	return mime.String()
}

// ExtensionForContentType returns a file extension (with leading dot) for
// the given MIME type, or an empty string if one isn't known.
func ExtensionForContentType(contentType string) string {
	if mime := mimetype.Lookup(contentType); mime != nil {
		return mime.Extension()
	}
	return ""
}
