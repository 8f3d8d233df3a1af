package inject

import (
	"bytes"

	"git.home.luguber.info/inful/booktoc/internal/directive"
)

type markdownFormat struct{}

func (markdownFormat) Name() string { return "markdown" }

func (markdownFormat) sealed() {}

// Inject appends the directive after a blank line.
func (markdownFormat) Inject(source []byte, block directive.Block) ([]byte, error) {
	rendered := block.Render()
	out := make([]byte, 0, len(source)+len(rendered)+2)
	out = append(out, source...)
	if len(out) > 0 && !bytes.HasSuffix(out, []byte("\n")) {
		out = append(out, '\n')
	}
	out = append(out, rendered...)
	out = append(out, '\n')
	return out, nil
}
