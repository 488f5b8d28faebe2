package match

import (
	"strings"
	"unicode"
)

// Normalize folds case and drops the '_', '-' and ' ' separators, so
// "order_line", "OrderLine" and "order-line" compare equal.
func Normalize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))

	for _, r := range s {
		if isSeparator(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// unqualified strips the package qualifier of a "pkg.Name" type name and
// any pointer stars.
func unqualified(s string) string {
	s = strings.TrimLeft(s, "*")
	if i := strings.LastIndex(s, "."); i >= 0 {
		return s[i+1:]
	}

	return s
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' '
}
