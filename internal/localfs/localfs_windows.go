//go:build windows

// Package localfs adapts the isLocal(path) -> bool predicate spec.md
// §1/§6 treats as an external collaborator: on Windows, cloud-backed
// placeholders (OneDrive, etc.) carry FILE_ATTRIBUTE_RECALL_ON_DATA_ACCESS
// / FILE_ATTRIBUTE_OFFLINE, which this file checks via syscall attributes.
package localfs

import (
	"syscall"
)

const (
	fileAttributeOffline               = 0x1000
	fileAttributeRecallOnDataAccess    = 0x400000
)

// IsLocal reports whether path is fully resident on local storage rather
// than a cloud-offline placeholder.
func IsLocal(path string) bool {
	p, err := syscall.UTF16PtrFromString(path)
	if err != nil {
		return true
	}
	attrs, err := syscall.GetFileAttributes(p)
	if err != nil || attrs == syscall.INVALID_FILE_ATTRIBUTES {
		return true
	}
	if attrs&fileAttributeOffline != 0 {
		return false
	}
	if attrs&fileAttributeRecallOnDataAccess != 0 {
		return false
	}
	return true
}
