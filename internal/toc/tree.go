package toc

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"git.home.luguber.info/inful/booktoc/internal/pathkey"
	terrors "git.home.luguber.info/inful/booktoc/internal/toc/errors"
	"gopkg.in/yaml.v3"
)

// Tree is a loaded manifest. It is read-only once built and belongs to a
// single build session.
type Tree struct {
	Root   *Node
	Source string
}

// LoadFile reads and parses the manifest at path.
func LoadFile(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, terrors.ManifestFormat(path, "cannot read manifest", err)
	}
	return Load(data, path)
}

// Load parses a manifest. The first record becomes the root; any further
// top-level records replace the root's own sections.
func Load(data []byte, source string) (*Tree, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, terrors.ManifestFormat(source, "cannot parse manifest", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, terrors.ManifestFormat(source, "manifest is empty", nil)
	}

	top := doc.Content[0]
	var records []*Node
	switch top.Kind {
	case yaml.SequenceNode:
		if err := top.Decode(&records); err != nil {
			return nil, terrors.ManifestFormat(source, "manifest records are malformed", err)
		}
	case yaml.MappingNode:
		var single Node
		if err := top.Decode(&single); err != nil {
			return nil, terrors.ManifestFormat(source, "manifest records are malformed", err)
		}
		records = []*Node{&single}
	default:
		return nil, terrors.ManifestFormat(source, "manifest must be a list of records", nil)
	}

	if len(records) == 0 || records[0] == nil {
		return nil, terrors.ManifestFormat(source, "manifest is empty", nil)
	}
	root := records[0]
	if root.Path == "" && root.Header == "" {
		return nil, terrors.ManifestFormat(source, "first manifest record needs a path or header", nil)
	}
	if len(records) > 1 {
		root.Sections = compact(records[1:])
	}
	return &Tree{Root: root, Source: source}, nil
}

func compact(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Find returns the node whose normalized path equals key.
func (t *Tree) Find(key pathkey.Key) (*Node, bool) {
	if t == nil {
		return nil, false
	}
	return Find(t.Root, key)
}

// RootDocument is the landing page of the build, taken from the root node.
func (t *Tree) RootDocument() (pathkey.Key, error) {
	if k, ok := t.Root.Key(); ok {
		return k, nil
	}
	return "", terrors.ManifestFormat(t.Source, "first manifest record has no path to use as the root document", nil)
}

// Walk visits nodes in pre-order. Returning false from fn skips the node's children.
func (t *Tree) Walk(fn func(n *Node, depth int) bool) {
	var walk func(n *Node, depth int)
	walk = func(n *Node, depth int) {
		if n == nil || !fn(n, depth) {
			return
		}
		for _, c := range n.Sections {
			walk(c, depth+1)
		}
	}
	walk(t.Root, 0)
}

// Keys returns every declared path key in traversal order.
func (t *Tree) Keys() []pathkey.Key {
	var keys []pathkey.Key
	t.Walk(func(n *Node, _ int) bool {
		if k, ok := n.Key(); ok {
			keys = append(keys, k)
		}
		return true
	})
	return keys
}

// Duplicates lists keys declared more than once. Lookup resolves them to the
// first declaration, so later ones are unreachable.
func (t *Tree) Duplicates() []pathkey.Key {
	seen := make(map[pathkey.Key]int)
	var dups []pathkey.Key
	for _, k := range t.Keys() {
		seen[k]++
		if seen[k] == 2 {
			dups = append(dups, k)
		}
	}
	return dups
}

// Print writes an indented outline of the tree.
func (t *Tree) Print(w io.Writer) error {
	var buf bytes.Buffer
	t.Walk(func(n *Node, depth int) bool {
		fmt.Fprintf(&buf, "%s%s", strings.Repeat("  ", depth), n.Label())
		if len(n.Options) > 0 {
			fmt.Fprintf(&buf, " [%s]", strings.Join(n.Options, ", "))
		}
		buf.WriteByte('\n')
		return true
	})
	_, err := w.Write(buf.Bytes())
	return err
}
