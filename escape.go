package twplug

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Escape escapes a class name for use in a class selector, following the
// CSS.escape rules. Names that already lex as a CSS identifier are returned
// unchanged.
func Escape(className string) string {
	if css.IsIdent([]byte(className)) {
		return className
	}

	var b strings.Builder
	for i, r := range className {
		switch {
		case r == 0:
			b.WriteRune('\uFFFD')
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(&b, "\\%x ", r)
		case r >= '0' && r <= '9' && (i == 0 || (i == 1 && className[0] == '-')):
			fmt.Fprintf(&b, "\\%x ", r)
		case r == '-' && i == 0 && len(className) == 1:
			b.WriteString("\\-")
		case r >= 0x80 || r == '-' || r == '_' || isASCIIAlnum(r):
			b.WriteRune(r)
		default:
			b.WriteByte('\\')
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
