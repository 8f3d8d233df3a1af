package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindDirectives(t *testing.T) {
	body := []byte("# Title\n\n" +
		"```{toctree}\n:hidden:\n\nintro\n```\n\n" +
		"```python\nprint(1)\n```\n\n" +
		"~~~{note}\nA note.\n~~~\n\n" +
		"```{ }\nnot a directive\n```\n")

	got := FindDirectives(body)
	require.Equal(t, []Directive{{Name: "toctree", Line: 3}, {Name: "note", Line: 13}}, got)
}

func TestFindDirectivesIgnoresIndentedAndInline(t *testing.T) {
	body := []byte("Inline `{toctree}` mention.\n\n    ```{toctree}\n    indented code\n    ```\n")
	require.Empty(t, FindDirectives(body))
}

func TestParseBody(t *testing.T) {
	root := ParseBody([]byte("# Heading\n\nText\n"))
	require.NotNil(t, root)
	require.Equal(t, 2, root.ChildCount())
}
