package wpschema

import (
	"strings"
	"unicode"
)

// UpperCamelize turns a post_type discriminator into a GraphQL type name:
// "nav_menu_item" becomes "NavMenuItem". Runs of '-', '_' and white space are
// dropped and the rune after them is upper-cased, as is the rune after a run of
// digits and the first rune. The rest of the input is kept as is.
func UpperCamelize(s string) string {
	s = strings.TrimLeft(strings.TrimSpace(s), "-_")
	var b strings.Builder
	b.Grow(len(s))
	upper := true
	for _, r := range s {
		switch {
		case r == '-' || r == '_' || unicode.IsSpace(r):
			upper = true
		case unicode.IsDigit(r):
			b.WriteRune(r)
			upper = true
		case upper:
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// validTypeName reports whether name can be used as a GraphQL type name.
func validTypeName(name string) bool {
	if name == "" || strings.HasPrefix(name, "__") {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z'):
		case i > 0 && '0' <= r && r <= '9':
		default:
			return false
		}
	}
	return true
}
