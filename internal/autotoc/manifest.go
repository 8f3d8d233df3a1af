package autotoc

import (
	"bytes"
	"fmt"
	"os"

	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"gopkg.in/yaml.v3"
)

const sectionBreak = "## REPLACE ##"

const banner = `# Each entry has the following schema:
#
# - path: chapter/page   # Document path relative to the book root, suffix optional
#   name: My Title       # Optional link label overriding the page title
#   options: [numbered]  # Optional toctree flags for this page's children
#   sections:            # Optional list of entries nested under this page
#
# A record with only a header inserts a label with no link:
# - header: My Header
#
# ==============================
# AUTOMATICALLY GENERATED TOC FILE.
# You should review the contents of this file, re-order items as you wish,
# and nest chapters in sections if you wish. Blank lines mark folder breaks.
# ==============================

`

// Build scans contentDir and returns the serialized draft manifest.
func Build(contentDir, splitChar string) ([]byte, error) {
	records, err := Scan(contentDir, splitChar)
	if err != nil {
		return nil, err
	}
	return Serialize(records)
}

// Serialize renders records as manifest YAML, preceded by the review banner.
// Folder breaks become blank lines.
func Serialize(records []Record) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, r := range records {
		switch r.Kind {
		case KindBreak:
			seq.Content = append(seq.Content, &yaml.Node{
				Kind: yaml.ScalarNode, Style: yaml.SingleQuotedStyle, Value: sectionBreak,
			})
		case KindHeader:
			seq.Content = append(seq.Content, entry("header", r.Value))
		default:
			seq.Content = append(seq.Content, entry("path", r.Value))
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "cannot serialize manifest").Fatal().Build()
	}
	if err := enc.Close(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "cannot serialize manifest").Fatal().Build()
	}

	marker := []byte("- '" + sectionBreak + "'")
	body := bytes.ReplaceAll(buf.Bytes(), marker, nil)
	return append([]byte(banner), body...), nil
}

func entry(key, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	}}
}

// WriteFile stores a draft at path. An existing file is only replaced when
// force is set.
func WriteFile(path string, data []byte, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return ferrors.ValidationError(fmt.Sprintf("%s already exists (use --force to overwrite)", path)).
			WithContext("path", path).
			Build()
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "cannot write manifest").
			Fatal().
			WithContext("path", path).
			Build()
	}
	return nil
}
