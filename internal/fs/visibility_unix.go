//go:build !windows

// Package fs holds the platform rules for which walked entries are visible.
package fs

// IsHidden reports dot-files and dot-directories.
func IsHidden(_ string, name string) bool {
	return len(name) > 0 && name[0] == '.'
}

// ShouldHideFromListing never hides anything outside Windows.
func ShouldHideFromListing(_, _ string) bool {
	return false
}
