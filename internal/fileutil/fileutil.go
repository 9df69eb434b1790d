// Package fileutil provides file and path utility functions.
package fileutil

import "os"

// FileExists returns true if the path exists and is a regular file.
// Directories and special files report false: a configuration source or
// document input must be a readable regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
