package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryManifest, "manifest is empty").
			WithSeverity(SeverityFatal).
			WithContext("manifest", "_toc.yml").
			Build()

		assert.Equal(t, CategoryManifest, err.Category())
		assert.Equal(t, SeverityFatal, err.Severity())
		assert.Equal(t, "manifest is empty", err.Message())

		file, ok := err.Context().GetString("manifest")
		require.True(t, ok)
		assert.Equal(t, "_toc.yml", file)
	})

	t.Run("Convenience constructors are fatal", func(t *testing.T) {
		for b, retry := range map[*ErrorBuilder]RetryStrategy{
			ConfigError("c"):      RetryUserAction,
			ManifestError("m"):    RetryUserAction,
			TocError("t"):         RetryUserAction,
			FormatError("f"):      RetryNever,
			FileSystemError("fs"): RetryNever,
		} {
			err := b.Build()
			assert.True(t, err.IsFatal(), err.Category())
			assert.Equal(t, retry, err.RetryStrategy(), err.Category())
		}
	})

	t.Run("Error string includes cause", func(t *testing.T) {
		err := WrapError(errors.New("yaml: bad indent"), CategoryManifest, "cannot parse manifest").Build()
		assert.Equal(t, "[manifest:error] cannot parse manifest: yaml: bad indent", err.Error())
	})
}

func TestErrorChain(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := TocError("page missing").WithCause(fmt.Errorf("%w: intro", sentinel)).Build()
	wrapped := fmt.Errorf("build: %w", err)

	assert.True(t, errors.Is(wrapped, sentinel))
	assert.True(t, IsClassified(wrapped))
	assert.True(t, HasCategory(wrapped, CategoryToc))
	assert.Equal(t, CategoryToc, GetCategory(wrapped))
	assert.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))

	classified, ok := AsClassified(wrapped)
	require.True(t, ok)
	assert.True(t, errors.Is(classified, TocError("page missing").Build()))
}

func TestWithContextCopies(t *testing.T) {
	base := ManifestError("m").WithContext("a", 1).Build()
	derived := base.WithContext("b", 2)

	_, hasB := base.Context().Get("b")
	assert.False(t, hasB)
	v, ok := derived.Context().Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}
