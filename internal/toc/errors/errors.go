package errors

// Package errors provides sentinel errors for the table-of-contents subsystem.
// Constructors wrap them in classified errors so callers can match with
// errors.Is and the CLI can still pick exit codes by category.

import (
	"errors"
	"fmt"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
)

var (
	// ErrManifestFormat indicates the manifest is missing or structurally unusable.
	ErrManifestFormat = errors.New("manifest format error")

	// ErrPageNotInToc indicates a page being rendered has no node in the loaded tree.
	ErrPageNotInToc = errors.New("page not in table of contents")

	// ErrUnsupportedFormat indicates injection was requested for an unrecognized source format.
	ErrUnsupportedFormat = errors.New("unsupported source format")

	// ErrInvalidContentDirectory indicates the auto-generation target is missing or not a directory.
	ErrInvalidContentDirectory = errors.New("invalid content directory")
)

func chain(sentinel, cause error) error {
	if cause == nil {
		return sentinel
	}
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// ManifestFormat reports an unusable manifest. cause may be nil.
func ManifestFormat(manifest, reason string, cause error) *ferrors.ClassifiedError {
	b := ferrors.ManifestError(reason).WithCause(chain(ErrManifestFormat, cause))
	if manifest != "" {
		b = b.WithContext("manifest", manifest)
	}
	return b.Build()
}

// PageNotInToc reports a rendered page that the manifest does not declare.
func PageNotInToc(page, manifest string) *ferrors.ClassifiedError {
	msg := fmt.Sprintf("the following path in your table of contents couldn't be found: %s; "+
		"double check your %s file to make sure the paths are correct", page, displayManifest(manifest))
	return ferrors.TocError(msg).
		WithCause(ErrPageNotInToc).
		WithContext("path", page).
		WithContext("manifest", manifest).
		Build()
}

// UnsupportedFormat reports a page whose suffix the injector does not handle.
func UnsupportedFormat(page, suffix string) *ferrors.ClassifiedError {
	return ferrors.FormatError("only markdown and ipynb files are supported").
		WithCause(ErrUnsupportedFormat).
		WithContext("path", page).
		WithContext("suffix", suffix).
		Build()
}

// InvalidContentDirectory reports an auto-generation target that cannot be scanned.
func InvalidContentDirectory(dir string, cause error) *ferrors.ClassifiedError {
	return ferrors.FileSystemError("could not find the provided content folder").
		WithCause(chain(ErrInvalidContentDirectory, cause)).
		WithContext("dir", dir).
		Build()
}

func displayManifest(manifest string) string {
	if manifest == "" {
		return "table of contents"
	}
	return "`" + manifest + "`"
}
