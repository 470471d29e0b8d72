//go:build windows

// Package fs holds the platform rules for which walked entries are visible.
package fs

import (
	"os"
	"syscall"
)

const (
	fileAttributeHidden       = 0x02
	fileAttributeSystem       = 0x04
	fileAttributeReparsePoint = 0x0400
)

// IsHidden reports entries carrying the hidden attribute. Dot-names count as
// hidden when the attributes cannot be read.
func IsHidden(fullPath string, name string) bool {
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return len(name) > 0 && name[0] == '.'
	}
	return attrs&fileAttributeHidden != 0
}

// ShouldHideFromListing reports system reparse points such as the legacy
// compatibility junctions in user profiles; walking them only yields errors.
func ShouldHideFromListing(fullPath, name string) bool {
	if fullPath == "" && name == "" {
		return false
	}
	attrs, err := fileAttributes(fullPath, name)
	if err != nil {
		return false
	}
	const junction = fileAttributeSystem | fileAttributeReparsePoint
	return attrs&junction == junction
}

func fileAttributes(fullPath, name string) (uint32, error) {
	target := fullPath
	if target == "" {
		target = name
	}
	if target == "" {
		return 0, os.ErrInvalid
	}

	ptr, err := syscall.UTF16PtrFromString(target)
	if err != nil {
		return 0, err
	}
	attrs, err := syscall.GetFileAttributes(ptr)
	if err == nil {
		return attrs, nil
	}
	if !os.IsNotExist(err) || fullPath == "" || fullPath == name {
		return 0, err
	}

	alt, convErr := syscall.UTF16PtrFromString(name)
	if convErr != nil {
		return 0, err
	}
	if attrs, altErr := syscall.GetFileAttributes(alt); altErr == nil {
		return attrs, nil
	}
	return 0, err
}
