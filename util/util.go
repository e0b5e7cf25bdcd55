package util

import (
	"path/filepath"
	"strings"
)

// DocPathToName splits a file path into its base name and lowercase
// extension without the dot.
func DocPathToName(path string) (name string, ext string) {
	base := filepath.Base(path)
	ext = strings.ToLower(strings.TrimPrefix(filepath.Ext(base), "."))
	name = strings.TrimSuffix(base, filepath.Ext(base))
	return name, ext
}

// EnsurePdfExt appends ".pdf" when the path carries no pdf extension.
func EnsurePdfExt(path string) string {
	if _, ext := DocPathToName(path); ext == "pdf" {
		return path
	}
	return path + ".pdf"
}
