package pipeline

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"index.md":                        "",
		"b/page.ipynb":                    "{}",
		"b/page.markdown":                 "",
		"b/.ipynb_checkpoints/page.ipynb": "{}",
		".hidden/x.md":                    "",
		"drafts/wip.md":                   "",
		"out/copy.md":                     "",
		"script.py":                       "",
		"LICENSE":                         "",
	})

	pages, err := Discover(root, []string{"drafts"}, filepath.Join(root, "out"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b/page.ipynb", "b/page.markdown", "index.md"}, pages)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"), nil)
	require.Error(t, err)
}

func TestExcluded(t *testing.T) {
	cases := []struct {
		rel      string
		patterns []string
		want     bool
	}{
		{"README.md", []string{"README.md"}, true},
		{"docs/README.md", []string{"README.md"}, true},
		{"_build", []string{"_build/"}, true},
		{"a/b.md", []string{"a/*.md"}, true},
		{"a/b.md", []string{"*.ipynb"}, false},
		{"a/b.md", []string{""}, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, excluded(tc.rel, tc.patterns), "%s %v", tc.rel, tc.patterns)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("---\ntitle: A\n---\n# A\n"))
	assert.Equal(t, a, Fingerprint([]byte("---\ntitle: A\n---\n# A\n")))
	assert.NotEqual(t, a, Fingerprint([]byte("---\ntitle: B\n---\n# A\n")))
	assert.NotEqual(t, a, Fingerprint([]byte("---\ntitle: A\n---\n# B\n")))
	assert.NotEqual(t, a, Fingerprint([]byte("---\ntitle: A\nfingerprint: abc\n---\n# A\n")))

	nb := Fingerprint([]byte(`{"cells": []}`))
	assert.NotEmpty(t, nb)
	assert.NotEqual(t, nb, Fingerprint([]byte(`{"cells": [1]}`)))
}
