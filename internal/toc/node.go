// Package toc models the global table of contents: a tree of pages loaded
// once per build from a YAML manifest and searched by normalized path.
package toc

import (
	"fmt"

	"git.home.luguber.info/inful/booktoc/internal/pathkey"
	"gopkg.in/yaml.v3"
)

// Node is one entry in the navigation tree. Header-only entries carry no Path.
// Unknown manifest keys are ignored.
type Node struct {
	Path     string  `yaml:"path,omitempty"`
	Name     string  `yaml:"name,omitempty"`
	Header   string  `yaml:"header,omitempty"`
	URL      string  `yaml:"url,omitempty"`
	Options  Options `yaml:"options,omitempty"`
	Sections []*Node `yaml:"sections,omitempty"`
}

// Key returns the normalized path of the node and false for path-less nodes.
func (n *Node) Key() (pathkey.Key, bool) {
	if n == nil || n.Path == "" {
		return "", false
	}
	return pathkey.Normalize(n.Path), true
}

// HasSections reports whether the node has children that need navigation.
func (n *Node) HasSections() bool { return n != nil && len(n.Sections) > 0 }

// Label is a short human description used by logs and the tree printer.
func (n *Node) Label() string {
	switch {
	case n.Path != "" && n.Name != "":
		return fmt.Sprintf("%s <%s>", n.Name, n.Path)
	case n.Path != "":
		return n.Path
	case n.Header != "":
		return "# " + n.Header
	case n.URL != "":
		return n.URL
	default:
		return "(empty)"
	}
}

// Options are per-node directive flags, in declaration order. The manifest
// may give a single string or a list.
type Options []string

// UnmarshalYAML accepts a scalar or a sequence of scalars.
func (o *Options) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*o = nil
			return nil
		}
		*o = Options{value.Value}
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*o = list
		return nil
	default:
		return fmt.Errorf("line %d: options must be a string or a list of strings", value.Line)
	}
}
