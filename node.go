package twplug

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v3"
)

// Kind discriminates the three statement shapes.
type Kind int

// Statement kinds
const (
	KindLine Kind = iota // literal text
	KindList             // ordered sequence of nodes
	KindRule             // rule block
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindList:
		return "list"
	case KindRule:
		return "rule"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is one statement or statement fragment.
//
// Implementations are Line, List and *Rule.
type Node interface {
	Kind() Kind
}

// Line is a literal line of output: a whole statement such as
// "@custom-variant hocus (&:hover);" or a declaration value.
type Line string

// Kind implements Node.
func (Line) Kind() Kind { return KindLine }

// List is an ordered sequence of nodes. Under a rule key it represents several
// declarations (or blocks) sharing one name, e.g. gradient fallbacks.
type List []Node

// Kind implements Node.
func (List) Kind() Kind { return KindList }

// Rule is an insertion-ordered block mapping selectors, at-rules or property
// names to nested nodes. Keys are unique; setting an existing key replaces its
// value in place.
type Rule struct {
	entries *orderedmap.OrderedMap[string, Node]
}

// Kind implements Node.
func (*Rule) Kind() Kind { return KindRule }

// NewRule returns an empty rule block.
func NewRule() *Rule {
	return &Rule{entries: orderedmap.NewOrderedMap[string, Node]()}
}

// R builds a rule block from alternating key/value arguments.
//
// Values may be a string, a []string (several declarations under one key), a
// Node, or anything fmt can print. R panics if given an odd number of arguments
// or a non-string key.
func R(kv ...any) *Rule {
	if len(kv)%2 == 1 {
		panic("twplug.R: odd argument count")
	}
	r := NewRule()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("twplug.R: key %v is not a string", kv[i]))
		}
		r.Set(key, ToNode(kv[i+1]))
	}
	return r
}

// ToNode converts a Go value into a Node.
func ToNode(v any) Node {
	switch x := v.(type) {
	case nil:
		return nil
	case Node:
		return x
	case string:
		return Line(x)
	case []string:
		list := make(List, len(x))
		for i, s := range x {
			list[i] = Line(s)
		}
		return list
	case []any:
		list := make(List, 0, len(x))
		for _, item := range x {
			if n := ToNode(item); n != nil {
				list = append(list, n)
			}
		}
		return list
	default:
		return Line(fmt.Sprint(x))
	}
}

// Set stores value under key and returns the rule for chaining.
func (r *Rule) Set(key string, value Node) *Rule {
	if r.entries == nil {
		r.entries = orderedmap.NewOrderedMap[string, Node]()
	}
	r.entries.Set(key, value)
	return r
}

// Get returns the value stored under key.
func (r *Rule) Get(key string) (Node, bool) {
	if r == nil || r.entries == nil {
		return nil, false
	}
	return r.entries.Get(key)
}

// Len returns the number of keys.
func (r *Rule) Len() int {
	if r == nil || r.entries == nil {
		return 0
	}
	return r.entries.Len()
}

// Keys returns the keys in insertion order.
func (r *Rule) Keys() []string {
	keys := make([]string, 0, r.Len())
	r.Each(func(key string, _ Node) {
		keys = append(keys, key)
	})
	return keys
}

// Each calls fn for every entry in insertion order.
func (r *Rule) Each(fn func(key string, value Node)) {
	if r == nil || r.entries == nil {
		return
	}
	for el := r.entries.Front(); el != nil; el = el.Next() {
		fn(el.Key, el.Value)
	}
}

// Clone returns a deep copy of the rule.
func (r *Rule) Clone() *Rule {
	out := NewRule()
	r.Each(func(key string, value Node) {
		out.Set(key, Clone(value))
	})
	return out
}

// Merge shallow-merges other into a copy of r. Keys of other win.
func (r *Rule) Merge(other *Rule) *Rule {
	out := r.Clone()
	other.Each(func(key string, value Node) {
		out.Set(key, Clone(value))
	})
	return out
}

// Clone returns a deep copy of n.
func Clone(n Node) Node {
	switch v := n.(type) {
	case *Rule:
		if v == nil {
			return nil
		}
		return v.Clone()
	case List:
		out := make(List, len(v))
		for i, item := range v {
			out[i] = Clone(item)
		}
		return out
	default:
		return n
	}
}

// lines returns the text of every Line in n, flattening lists.
func lines(n Node) []string {
	switch v := n.(type) {
	case Line:
		return []string{string(v)}
	case List:
		var out []string
		for _, item := range v {
			out = append(out, lines(item)...)
		}
		return out
	}
	return nil
}
