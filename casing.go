package twplug

import "strings"

// CamelToSnake inserts sep before every upper-case ASCII letter and lower-cases
// the result. Consecutive capitals each get their own separator:
// CamelToSnake("fontXL", "-") == "font-x-l".
func CamelToSnake(s, sep string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return strings.ToLower(b.String())
}

// DashCase converts a camel-case identifier to dash-case.
func DashCase(s string) string {
	return CamelToSnake(s, "-")
}

// propertyName dash-cases a declaration property. Custom properties are kept
// verbatim since they are case-sensitive.
func propertyName(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}
	return DashCase(key)
}

// dashProperties returns a copy of r with every declaration property dash-cased.
// Keys holding nested blocks are selectors or at-rules and are kept as written.
func dashProperties(r *Rule) *Rule {
	out := NewRule()
	r.Each(func(key string, value Node) {
		if holdsBlock(value) {
			out.Set(key, dashNode(value))
			return
		}
		out.Set(propertyName(key), Clone(value))
	})
	return out
}

// dashNode applies dashProperties to every block in n.
func dashNode(n Node) Node {
	switch v := n.(type) {
	case *Rule:
		return dashProperties(v)
	case List:
		out := make(List, len(v))
		for i, item := range v {
			out[i] = dashNode(item)
		}
		return out
	}
	return Clone(n)
}

func holdsBlock(n Node) bool {
	switch v := n.(type) {
	case *Rule:
		return true
	case List:
		for _, item := range v {
			if holdsBlock(item) {
				return true
			}
		}
	}
	return false
}
