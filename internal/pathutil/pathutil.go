// Package pathutil holds the file-name helpers shared by the savers and loaders.
package pathutil

import (
	"fmt"
	"path/filepath"
	"strings"
)

// IndexNameLength is the width of counter-based file names, e.g. "000000000042".
const IndexNameLength = 12

// FileName returns the last element of path. Both '/' and '\' are treated as separators
// so names recorded on Windows hosts resolve the same way.
func FileName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}

	return path
}

// FileNameNoExtension returns the file name of path without its last extension.
//
//	FileNameNoExtension("/data/hand_l.txt") == "hand_l"
//	FileNameNoExtension("archive.tar.gz") == "archive.tar"
func FileNameNoExtension(path string) string {
	name := FileName(path)
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		return name[:i]
	}

	return name
}

// Extension returns the lower-cased extension of path without the dot, or "" if none.
func Extension(path string) string {
	name := FileName(path)
	if i := strings.LastIndexByte(name, '.'); i >= 0 && i < len(name)-1 {
		return strings.ToLower(name[i+1:])
	}

	return ""
}

// FullName joins a file name without extension and an extension: "pose" + "yml" -> "pose.yml".
func FullName(fileNameNoExtension, extension string) string {
	return fileNameNoExtension + "." + extension
}

// IndexName renders index as a zero-padded IndexNameLength-digit string.
func IndexName(index uint64) string {
	return fmt.Sprintf("%0*d", IndexNameLength, index)
}

// Join joins a directory and a file name; an empty directory leaves the name unchanged.
func Join(dir, name string) string {
	if dir == "" {
		return name
	}

	return filepath.Join(dir, name)
}
