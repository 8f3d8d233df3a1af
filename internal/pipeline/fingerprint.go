package pipeline

import (
	"github.com/inful/mdfp"
)

// Fingerprint identifies the exact bytes of a page for change detection.
// The whole file is hashed, frontmatter included, so an edit that only
// touches a frontmatter fingerprint key still counts as a change.
func Fingerprint(content []byte) string {
	return mdfp.CalculateFingerprint(string(content))
}
