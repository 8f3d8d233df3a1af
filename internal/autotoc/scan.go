package autotoc

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"git.home.luguber.info/inful/booktoc/internal/logfields"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
)

// SupportedSuffixes are the document suffixes picked up by a scan.
var SupportedSuffixes = []string{".ipynb", ".md", ".markdown", ".Rmd", ".py"}

// ExcludedNames are filenames never listed, wherever they appear.
var ExcludedNames = []string{"LICENSE.md"}

const checkpointMarker = "ipynb_checkpoints"

// Kind distinguishes the records of a draft.
type Kind int

const (
	// KindPage links a document by its suffix-free, root-relative path.
	KindPage Kind = iota
	// KindHeader labels a folder of documents.
	KindHeader
	// KindBreak separates folders; it is dropped from the serialized text.
	KindBreak
)

// Record is one entry of a draft manifest.
type Record struct {
	Kind  Kind
	Value string
}

// Scan walks contentDir and returns the draft records in manifest order.
func Scan(contentDir, splitChar string) ([]Record, error) {
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, terrors.InvalidContentDirectory(contentDir, err)
	}
	if !info.IsDir() {
		return nil, terrors.InvalidContentDirectory(contentDir, nil)
	}

	entries, err := os.ReadDir(contentDir)
	if err != nil {
		return nil, walkError(contentDir, err)
	}

	var records []Record
	var subdirs []string
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasPrefix(name, "."), strings.Contains(name, checkpointMarker):
			continue
		case e.IsDir():
			subdirs = append(subdirs, name)
		case qualifies(name):
			records = append(records, Record{Kind: KindPage, Value: stripSuffix(name)})
		}
	}
	sort.Strings(subdirs)

	for _, sub := range subdirs {
		pages, err := collect(contentDir, sub)
		if err != nil {
			return nil, err
		}
		if len(pages) == 0 {
			slog.Debug("Skipping folder without documents", logfields.Dir(sub))
			continue
		}
		records = append(records,
			Record{Kind: KindBreak},
			Record{Kind: KindHeader, Value: Title(sub, splitChar)})
		for _, p := range pages {
			records = append(records, Record{Kind: KindPage, Value: p})
		}
	}
	return records, nil
}

// collect returns the suffix-free, root-relative paths of every document
// under root/sub, sorted.
func collect(root, sub string) ([]string, error) {
	var pages []string
	err := filepath.WalkDir(filepath.Join(root, sub), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if strings.Contains(name, checkpointMarker) || (strings.HasPrefix(name, ".") && p != filepath.Join(root, sub)) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, ".") || !qualifies(name) {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		pages = append(pages, stripSuffix(filepath.ToSlash(rel)))
		return nil
	})
	if err != nil {
		return nil, walkError(filepath.Join(root, sub), err)
	}
	sort.Strings(pages)
	return pages, nil
}

func qualifies(name string) bool {
	if slices.Contains(ExcludedNames, name) || strings.Contains(name, checkpointMarker) {
		return false
	}
	return slices.Contains(SupportedSuffixes, filepath.Ext(name))
}

func stripSuffix(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

func walkError(dir string, err error) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot scan content directory").
		Fatal().
		WithContext("dir", dir).
		Build()
}
