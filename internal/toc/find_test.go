package toc

import (
	"testing"

	"git.home.luguber.info/inful/booktoc/internal/pathkey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindEveryUniqueNode(t *testing.T) {
	tree, err := Load([]byte(bookManifest), "_toc.yml")
	require.NoError(t, err)

	tree.Walk(func(n *Node, _ int) bool {
		key, ok := n.Key()
		if !ok {
			return true
		}
		found, ok := tree.Find(key)
		require.True(t, ok, "key %s", key)
		assert.Same(t, n, found)
		return true
	})
}

func TestFindNormalizesNodePaths(t *testing.T) {
	tree, err := Load([]byte(bookManifest), "")
	require.NoError(t, err)

	found, ok := tree.Find(pathkey.Normalize("part1/chapter/other.md"))
	require.True(t, ok)
	assert.Equal(t, "Other", found.Name)

	found, ok = tree.Find(pathkey.Normalize("/appendix/a.ipynb"))
	require.True(t, ok)
	assert.Equal(t, "appendix/a", found.Path)
}

func TestFindMiss(t *testing.T) {
	tree, err := Load([]byte(bookManifest), "")
	require.NoError(t, err)

	for _, key := range []pathkey.Key{"missing", "part1", "appendix", "Appendix", ""} {
		_, ok := tree.Find(key)
		assert.False(t, ok, "key %q", key)
	}

	var nilTree *Tree
	_, ok := nilTree.Find("intro")
	assert.False(t, ok)
}

func TestFindFirstMatchWins(t *testing.T) {
	manifest := `
- path: index
- path: chapter
  name: first
  sections:
  - path: dup
    name: nested
- path: dup
  name: later
`
	tree, err := Load([]byte(manifest), "")
	require.NoError(t, err)

	found, ok := tree.Find("dup")
	require.True(t, ok)
	assert.Equal(t, "nested", found.Name)
}

func TestFindThroughHeaderNodes(t *testing.T) {
	root := &Node{Header: "Book", Sections: []*Node{
		{Header: "Part", Sections: []*Node{{Path: "deep/page.md"}}},
	}}
	found, ok := Find(root, "deep/page")
	require.True(t, ok)
	assert.Equal(t, "deep/page.md", found.Path)
}
