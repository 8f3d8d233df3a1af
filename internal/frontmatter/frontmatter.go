// Package frontmatter separates YAML frontmatter from a Markdown page body.
package frontmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates the page opened a frontmatter block
// that never closes.
var ErrMissingClosingDelimiter = errors.New("yaml frontmatter start delimiter found but closing delimiter is missing")

// Document is a page split into its frontmatter and body. Both slices alias
// the input.
type Document struct {
	Frontmatter    []byte
	Body           []byte
	HasFrontmatter bool
	Newline        string
}

// Split separates `---` delimited YAML frontmatter from the body. A page that
// does not start with a delimiter is returned whole as the body.
func Split(content []byte) (Document, error) {
	nl := detectNewline(content)
	doc := Document{Body: content, Newline: nl}

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return doc, nil
	}
	rest := content[len(open):]

	if bytes.HasPrefix(rest, open) {
		doc.Frontmatter = []byte{}
		doc.Body = rest[len(open):]
		doc.HasFrontmatter = true
		return doc, nil
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		return Document{}, ErrMissingClosingDelimiter
	}
	doc.Frontmatter = rest[:idx+len(nl)]
	doc.Body = rest[idx+len(closeSeq):]
	doc.HasFrontmatter = true
	return doc, nil
}

// BodyOffset is the number of lines preceding the body, so line numbers found
// in Body can be reported against the whole page.
func (d Document) BodyOffset() int {
	if !d.HasFrontmatter {
		return 0
	}
	return bytes.Count(d.Frontmatter, []byte("\n")) + 2
}

func detectNewline(content []byte) string {
	if i := bytes.IndexByte(content, '\n'); i > 0 && content[i-1] == '\r' {
		return "\r\n"
	}
	return "\n"
}
