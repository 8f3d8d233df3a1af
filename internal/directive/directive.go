// Package directive builds the toctree navigation block injected into a page
// whose TOC node has sections.
package directive

import (
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/booktoc/internal/pathkey"
	"git.home.luguber.info/inful/booktoc/internal/toc"
)

// fixedFlags are always emitted; the global sidebar renders the navigation,
// so the in-page tree stays hidden.
var fixedFlags = []string{"hidden", "titlesonly"}

// Block is the renderer-neutral content of a navigation directive.
type Block struct {
	// Options are the node's flags in manifest order.
	Options []string
	// Entries are child labels in display order, relative to the parent page.
	Entries []string
}

// Empty reports whether there is nothing to navigate to.
func (b Block) Empty() bool { return len(b.Entries) == 0 }

// Synthesize builds the directive for node from its sections. Children
// without a path (headers) cannot be linked and are left out.
func Synthesize(node *toc.Node) Block {
	var b Block
	if node == nil {
		return b
	}
	b.Options = slices.Clone(node.Options)

	parentDir := "."
	if key, ok := node.Key(); ok {
		parentDir = key.Dir()
	}
	for _, child := range node.Sections {
		key, ok := child.Key()
		if !ok {
			continue
		}
		entry := relativeTo(parentDir, key)
		if child.Name != "" {
			entry = child.Name + " <" + entry + ">"
		}
		b.Entries = append(b.Entries, entry)
	}
	return b
}

func relativeTo(dir string, target pathkey.Key) string {
	rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash(string(target)))
	if err != nil {
		return string(target)
	}
	return filepath.ToSlash(rel)
}

// Render formats the block as a MyST toctree fence. The text starts with a
// newline so it can be appended directly to existing source.
func (b Block) Render() string {
	var sb strings.Builder
	sb.WriteString("\n```{toctree}\n")
	for _, f := range fixedFlags {
		sb.WriteString(":" + f + ":\n")
	}
	for _, opt := range b.Options {
		opt = strings.TrimSpace(opt)
		if opt == "" || slices.Contains(fixedFlags, opt) {
			continue
		}
		sb.WriteString(":" + opt + ":\n")
	}
	sb.WriteString("\n")
	for _, e := range b.Entries {
		sb.WriteString(e)
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}
