package autotoc

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	upper = cases.Upper(language.Und)
	lower = cases.Lower(language.Und)
)

// Title turns a folder name into a header label. The name is split on
// splitChar; a leading integer token is an ordering prefix and is dropped
// unless it is the only token. Each token is capitalized.
func Title(name, splitChar string) string {
	parts := []string{name}
	if splitChar != "" {
		parts = strings.Split(name, splitChar)
	}
	if len(parts) > 1 {
		if _, err := strconv.Atoi(parts[0]); err == nil {
			parts = parts[1:]
		}
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return upper.String(s[:size]) + lower.String(s[size:])
}
