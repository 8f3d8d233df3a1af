package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flavor string

const (
	flavorMarkdown flavor = "markdown"
	flavorNotebook flavor = "notebook"
)

func newFlavorNormalizer() *Normalizer[flavor] {
	return NewNormalizer(map[string]flavor{
		"markdown": flavorMarkdown,
		"MD":       flavorMarkdown,
		"notebook": flavorNotebook,
	}, flavorMarkdown)
}

func TestNormalize(t *testing.T) {
	n := newFlavorNormalizer()
	tests := []struct {
		in   string
		want flavor
	}{
		{"markdown", flavorMarkdown},
		{"  md ", flavorMarkdown},
		{"NoteBook", flavorNotebook},
		{"unknown", flavorMarkdown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, n.Normalize(tt.in), tt.in)
	}
}

func TestNormalizeWithError(t *testing.T) {
	n := newFlavorNormalizer()

	v, err := n.NormalizeWithError("NOTEBOOK")
	require.NoError(t, err)
	assert.Equal(t, flavorNotebook, v)

	_, err = n.NormalizeWithError("rst")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[markdown md notebook]")
}

func TestValidKeysIsCopy(t *testing.T) {
	n := newFlavorNormalizer()
	keys := n.ValidKeys()
	keys[0] = "changed"
	assert.Equal(t, []string{"markdown", "md", "notebook"}, n.ValidKeys())
}
