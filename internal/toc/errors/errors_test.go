package errors

import (
	"errors"
	"io/fs"
	"testing"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		category ferrors.ErrorCategory
		retry    ferrors.RetryStrategy
	}{
		{"manifest", ManifestFormat("_toc.yml", "manifest is empty", nil), ErrManifestFormat, ferrors.CategoryManifest, ferrors.RetryUserAction},
		{"page", PageNotInToc("intro.md", "_toc.yml"), ErrPageNotInToc, ferrors.CategoryToc, ferrors.RetryUserAction},
		{"format", UnsupportedFormat("page.rst", ".rst"), ErrUnsupportedFormat, ferrors.CategoryFormat, ferrors.RetryNever},
		{"dir", InvalidContentDirectory("/nope", fs.ErrNotExist), ErrInvalidContentDirectory, ferrors.CategoryFileSystem, ferrors.RetryNever},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, errors.Is(tt.err, tt.sentinel))
			assert.True(t, ferrors.HasCategory(tt.err, tt.category))
			c, ok := ferrors.AsClassified(tt.err)
			require.True(t, ok)
			assert.True(t, c.IsFatal())
			assert.Equal(t, tt.retry, c.RetryStrategy())
		})
	}
}

func TestCausePreserved(t *testing.T) {
	err := InvalidContentDirectory("/nope", fs.ErrNotExist)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	parse := errors.New("yaml: line 3")
	merr := ManifestFormat("_toc.yml", "cannot parse manifest", parse)
	assert.True(t, errors.Is(merr, parse))
	assert.Contains(t, merr.Error(), "yaml: line 3")
}

func TestPageNotInTocMessage(t *testing.T) {
	err := PageNotInToc("chapters/missing.md", "_toc.yml")
	assert.Contains(t, err.Message(), "chapters/missing.md")
	assert.Contains(t, err.Message(), "`_toc.yml`")

	page, _ := err.Context().GetString("path")
	assert.Equal(t, "chapters/missing.md", page)
}
