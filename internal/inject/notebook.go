package inject

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"git.home.luguber.info/inful/booktoc/internal/directive"
	ferrors "git.home.luguber.info/inful/booktoc/internal/foundation/errors"
	"github.com/google/uuid"
)

type notebookFormat struct{}

func (notebookFormat) Name() string { return "notebook" }

func (notebookFormat) sealed() {}

// newCellID mirrors nbformat: the first eight hex digits of a random UUID.
var newCellID = func() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Inject appends the directive as a trailing markdown cell and re-serializes
// the notebook the way nbformat writes it: sorted keys, one-space indent and
// a trailing newline. Unknown fields survive untouched.
func (notebookFormat) Inject(source []byte, block directive.Block) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(source))
	dec.UseNumber()
	var nb map[string]any
	if err := dec.Decode(&nb); err != nil {
		return nil, notebookError("cannot parse notebook", err)
	}
	if nb == nil {
		return nil, notebookError("notebook is empty", nil)
	}
	if major := intField(nb, "nbformat"); major != 4 {
		return nil, notebookError(fmt.Sprintf("unsupported nbformat version %d", major), nil)
	}

	var cells []any
	switch raw := nb["cells"].(type) {
	case nil:
	case []any:
		cells = raw
	default:
		return nil, notebookError("notebook cells must be a list", nil)
	}

	cell := map[string]any{
		"cell_type": "markdown",
		"metadata":  map[string]any{},
		"source":    splitLines(block.Render()),
	}
	if intField(nb, "nbformat_minor") >= 5 {
		cell["id"] = newCellID()
	}
	nb["cells"] = append(cells, cell)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(nb); err != nil {
		return nil, notebookError("cannot serialize notebook", err)
	}
	return buf.Bytes(), nil
}

func notebookError(msg string, cause error) error {
	b := ferrors.FormatError(msg)
	if cause != nil {
		b = b.WithCause(cause)
	}
	return b.Build()
}

func intField(nb map[string]any, key string) int64 {
	n, ok := nb[key].(json.Number)
	if !ok {
		return -1
	}
	v, err := n.Int64()
	if err != nil {
		return -1
	}
	return v
}

// splitLines splits text into lines that keep their terminators, the shape
// nbformat stores multi-line cell sources in.
func splitLines(text string) []string {
	lines := strings.SplitAfter(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
