package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Directive is a MyST-style fenced directive such as ```{toctree}.
type Directive struct {
	Name string
	// Line is the 1-based line of the opening fence.
	Line int
}

// ParseBody parses a Markdown body (frontmatter already removed) into a Goldmark AST.
func ParseBody(body []byte) gmast.Node {
	return goldmark.New().Parser().Parse(text.NewReader(body))
}

// FindDirectives returns the fenced directives in body, in document order.
// Fences whose info string is not of the form {name} are ignored.
func FindDirectives(body []byte) []Directive {
	root := ParseBody(body)
	var found []Directive
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		fence, ok := n.(*gmast.FencedCodeBlock)
		if !ok || fence.Info == nil {
			return gmast.WalkContinue, nil
		}
		name, ok := directiveName(fence.Info.Segment.Value(body))
		if !ok {
			return gmast.WalkSkipChildren, nil
		}
		found = append(found, Directive{Name: name, Line: fenceLine(body, fence)})
		return gmast.WalkSkipChildren, nil
	})
	return found
}

func directiveName(info []byte) (string, bool) {
	s := strings.TrimSpace(string(info))
	if !strings.HasPrefix(s, "{") {
		return "", false
	}
	end := strings.IndexByte(s, '}')
	if end < 0 {
		return "", false
	}
	name := strings.TrimSpace(s[1:end])
	return name, name != ""
}

// fenceLine locates the opening fence from the info segment, which sits on
// the fence line itself.
func fenceLine(body []byte, fence *gmast.FencedCodeBlock) int {
	return bytes.Count(body[:fence.Info.Segment.Start], []byte("\n")) + 1
}
