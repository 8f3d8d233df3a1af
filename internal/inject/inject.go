// Package inject splices a rendered navigation directive into a page source.
//
// Formats form a closed set: Markdown and Notebook. Adding one means adding a
// type that satisfies Format, which only this package can do.
package inject

import (
	"path"
	"strings"

	"git.home.luguber.info/inful/booktoc/internal/directive"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
)

// Format is a page source format that can receive a directive.
type Format interface {
	// Name is the lower-case format name used in logs.
	Name() string
	// Inject returns source with block appended.
	Inject(source []byte, block directive.Block) ([]byte, error)

	sealed()
}

var (
	Markdown Format = markdownFormat{}
	Notebook Format = notebookFormat{}
)

var formatsBySuffix = map[string]Format{
	".md":       Markdown,
	".markdown": Markdown,
	".ipynb":    Notebook,
}

// ForPath picks the format from the document's suffix.
func ForPath(docPath string) (Format, error) {
	suffix := strings.ToLower(path.Ext(docPath))
	if f, ok := formatsBySuffix[suffix]; ok {
		return f, nil
	}
	return nil, terrors.UnsupportedFormat(docPath, suffix)
}

// Supported reports whether docPath has a format the injector handles.
func Supported(docPath string) bool {
	_, ok := formatsBySuffix[strings.ToLower(path.Ext(docPath))]
	return ok
}

// Inject dispatches on docPath's suffix and appends block to source.
func Inject(docPath string, source []byte, block directive.Block) ([]byte, error) {
	f, err := ForPath(docPath)
	if err != nil {
		return nil, err
	}
	return f.Inject(source, block)
}
