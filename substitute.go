package twplug

import "strings"

// Placeholder tokens passed to dynamic utility and variant generators.
const (
	ValuePlaceholder    = "<value>"
	ModifierPlaceholder = "<modifier>"
)

// bareTypes are data types that may also match an unbracketed candidate value.
var bareTypes = map[string]bool{
	"integer":    true,
	"number":     true,
	"percentage": true,
	"ratio":      true,
}

// Substitute returns a deep copy of n with every occurrence of token replaced
// in both keys and values.
func Substitute(n Node, token, replacement string) Node {
	switch v := n.(type) {
	case Line:
		return Line(strings.ReplaceAll(string(v), token, replacement))
	case List:
		out := make(List, len(v))
		for i, item := range v {
			out[i] = Substitute(item, token, replacement)
		}
		return out
	case *Rule:
		return SubstituteRule(v, token, replacement)
	}
	return n
}

// SubstituteRule is Substitute for rule blocks.
func SubstituteRule(r *Rule, token, replacement string) *Rule {
	if r == nil {
		return nil
	}
	out := NewRule()
	r.Each(func(key string, value Node) {
		out.Set(strings.ReplaceAll(key, token, replacement), Substitute(value, token, replacement))
	})
	return out
}

// MergeRules combines sibling rule blocks into one block keyed by the union of
// their keys. Nested blocks merge recursively; differing declarations under one
// key accumulate into a List in first-seen order.
func MergeRules(rules ...*Rule) *Rule {
	out := NewRule()
	for _, r := range rules {
		mergeInto(out, r)
	}
	return out
}

func mergeInto(dst, src *Rule) {
	src.Each(func(key string, value Node) {
		current, ok := dst.Get(key)
		if !ok {
			dst.Set(key, Clone(value))
			return
		}
		dst.Set(key, combine(current, value))
	})
}

func combine(a, b Node) Node {
	ra, aIsRule := a.(*Rule)
	rb, bIsRule := b.(*Rule)
	if aIsRule && bIsRule {
		merged := ra.Clone()
		mergeInto(merged, rb)
		return merged
	}

	items := flattenList(a)
	for _, item := range flattenList(b) {
		if !containsLine(items, item) {
			items = append(items, Clone(item))
		}
	}
	if len(items) == 1 {
		return items[0]
	}
	return items
}

func flattenList(n Node) List {
	if l, ok := n.(List); ok {
		out := make(List, 0, len(l))
		for _, item := range l {
			out = append(out, flattenList(item)...)
		}
		return out
	}
	if n == nil {
		return nil
	}
	return List{n}
}

func containsLine(list List, n Node) bool {
	line, ok := n.(Line)
	if !ok {
		return false
	}
	for _, item := range list {
		if other, ok := item.(Line); ok && other == line {
			return true
		}
	}
	return false
}

// valueSet holds the concrete substitutions derived from MatchOptions.
type valueSet struct {
	values    []string
	modifiers []string
}

// valueOptions expands match options into the values and modifiers that are
// substituted into a utility template.
func valueOptions(opts MatchOptions) valueSet {
	var vs valueSet
	for _, e := range opts.Values {
		vs.values = append(vs.values, e.Value)
	}
	for _, t := range opts.Types {
		if t == "any" {
			vs.values = append(vs.values, ValueRef("[*]"))
			continue
		}
		if bareTypes[t] {
			vs.values = append(vs.values, ValueRef(t))
		}
		vs.values = append(vs.values, ValueRef("["+t+"]"))
	}
	for _, e := range opts.Modifiers {
		vs.modifiers = append(vs.modifiers, modifierRef(e.Value))
	}
	return vs
}

// modifierRef moves a value reference into the modifier namespace:
// "--value(--leading-*)" -> "--modifier(--leading-*)".
func modifierRef(v string) string {
	if rest, ok := strings.CutPrefix(v, "--value("); ok {
		return "--modifier(" + rest
	}
	return v
}
