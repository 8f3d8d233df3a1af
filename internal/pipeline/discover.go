package pipeline

import (
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"git.home.luguber.info/inful/booktoc/internal/inject"
	"git.home.luguber.info/inful/booktoc/internal/util/sets"
)

const checkpointMarker = "ipynb_checkpoints"

// Discover returns the injectable pages under root as slash-separated paths
// relative to root, in lexical order. Hidden entries, notebook checkpoints,
// skipDirs and anything matching an exclude pattern are left out.
func Discover(root string, exclude []string, skipDirs ...string) ([]string, error) {
	skip := sets.New[string]()
	for _, d := range skipDirs {
		if abs, err := filepath.Abs(d); err == nil {
			skip.Add(abs)
		}
	}

	var pages []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		name := d.Name()
		ignored := strings.HasPrefix(name, ".") || strings.Contains(name, checkpointMarker) || excluded(rel, exclude)
		if d.IsDir() {
			if abs, err := filepath.Abs(p); err == nil && skip.Has(abs) {
				return filepath.SkipDir
			}
			if ignored {
				return filepath.SkipDir
			}
			return nil
		}
		if ignored || !inject.Supported(rel) {
			return nil
		}
		pages = append(pages, rel)
		return nil
	})
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to scan source directory").
			Fatal().
			WithContext("dir", root).
			Build()
	}
	return pages, nil
}

// excluded matches rel and its base name against each glob pattern.
func excluded(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, p := range patterns {
		p = strings.TrimSuffix(filepath.ToSlash(p), "/")
		if p == "" {
			continue
		}
		if p == rel {
			return true
		}
		if ok, _ := path.Match(p, rel); ok {
			return true
		}
		if ok, _ := path.Match(p, base); ok {
			return true
		}
	}
	return false
}
