package inject

import (
	"errors"
	"testing"

	"git.home.luguber.info/inful/booktoc/internal/directive"
	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleBlock = directive.Block{Options: []string{"numbered"}, Entries: []string{"intro", "Guide <guide>"}}

func TestForPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"intro.md", Markdown},
		{"chapter/notes.MARKDOWN", Markdown},
		{"analysis.ipynb", Notebook},
	}
	for _, tt := range tests {
		got, err := ForPath(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, p := range []string{"page.rst", "script.py", "README"} {
		_, err := ForPath(p)
		require.Error(t, err)
		assert.True(t, errors.Is(err, terrors.ErrUnsupportedFormat))
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFormat))
		assert.False(t, Supported(p))
	}
}

func TestInjectMarkdown(t *testing.T) {
	out, err := Inject("index.md", []byte("# Title\n\nBody text.\n"), sampleBlock)
	require.NoError(t, err)

	want := "# Title\n\nBody text.\n" +
		"\n```{toctree}\n:hidden:\n:titlesonly:\n:numbered:\n\nintro\nGuide <guide>\n```\n\n"
	assert.Equal(t, want, string(out))
}

func TestInjectMarkdownWithoutTrailingNewline(t *testing.T) {
	out, err := Markdown.Inject([]byte("# Title"), sampleBlock)
	require.NoError(t, err)
	assert.Contains(t, string(out), "# Title\n\n```{toctree}")
}

func TestInjectMarkdownDoesNotAliasInput(t *testing.T) {
	src := make([]byte, 0, 1024)
	src = append(src, "body\n"...)
	_, err := Markdown.Inject(src, sampleBlock)
	require.NoError(t, err)
	assert.Equal(t, "body\n", string(src))
}

func TestUnsupportedInject(t *testing.T) {
	_, err := Inject("page.rst", []byte("text"), sampleBlock)
	assert.True(t, errors.Is(err, terrors.ErrUnsupportedFormat))
}
