package fsutil

import (
	"fmt"
	"os"
	"strings"
	"unicode"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// SanitizeSegment maps an arbitrary string to a filesystem-safe single path
// segment: path separators, shell-hostile punctuation and all whitespace
// become underscores, everything else passes through unchanged. Pure and
// total; it does not reject degenerate results such as empty strings or
// leading dots, callers must tolerate those.
func SanitizeSegment(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		if unicode.IsSpace(r) {
			return '_'
		}
		return r
	}, s)
}

// EnsureDir creates the directory chain for path if it does not exist yet.
// Idempotent and safe under concurrent calls for the same path: a lost
// creation race is not an error. Fails only on non-recoverable I/O errors,
// including path already existing as a regular file.
func EnsureDir(path string) error {
	info, err := os.Stat(path)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("path %s exists and is not a directory", path)
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}

	if err := os.MkdirAll(path, DefaultDirPermissions); err != nil {
		// Another caller may have created it between Stat and MkdirAll.
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			return nil
		}
		return err
	}
	return nil
}
