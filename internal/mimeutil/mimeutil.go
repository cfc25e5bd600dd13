// Package mimeutil adapts github.com/gabriel-vasile/mimetype into the
// mimeOf(path) -> optional<string> predicate spec.md §1/§6 treats as an
// external collaborator.
package mimeutil

import "github.com/gabriel-vasile/mimetype"

// MimeOf sniffs path's content and returns its MIME type, or "" if
// detection fails (e.g. the file cannot be opened).
func MimeOf(path string) string {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return ""
	}
	return mtype.String()
}
