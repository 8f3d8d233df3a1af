// Package pathkey normalizes document paths into the suffix-free,
// book-relative keys used to match rendered pages against TOC entries.
package pathkey

import (
	"path"
	"strings"
)

// Key is a normalized document path. Two keys are equal exactly when their
// strings are equal.
type Key string

// DocumentSuffixes are the filename suffixes stripped during normalization.
var DocumentSuffixes = []string{".ipynb", ".md", ".markdown", ".Rmd", ".py", ".rst"}

// Normalize strips leading path separators (and "./") and any trailing document
// suffixes from p. Everything else is returned unchanged.
func Normalize(p string) Key {
	p = strings.ReplaceAll(p, `\`, "/")
	for strings.HasPrefix(p, "/") || strings.HasPrefix(p, "./") {
		p = strings.TrimPrefix(strings.TrimPrefix(p, "."), "/")
	}
	for {
		ext := path.Ext(p)
		if ext == "" || ext == p || !isDocumentSuffix(ext) {
			break
		}
		p = strings.TrimSuffix(p, ext)
	}
	return Key(p)
}

func isDocumentSuffix(ext string) bool {
	for _, s := range DocumentSuffixes {
		if ext == s {
			return true
		}
	}
	return false
}

// Dir returns the directory part of k, "." for top-level keys.
func (k Key) Dir() string { return path.Dir(string(k)) }

func (k Key) String() string { return string(k) }
