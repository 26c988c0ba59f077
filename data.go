package twplug

import (
	"sort"
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Table is an insertion-ordered mapping used for theme and configuration data.
// Values are strings, numbers, []any or []string lists, nested *Table values,
// or functions returning one of those.
type Table = orderedmap.OrderedMap[string, any]

// NewTable builds a table from alternating key/value arguments.
// It panics if given an odd number of arguments or a non-string key.
func NewTable(kv ...any) *Table {
	if len(kv)%2 == 1 {
		panic("twplug.NewTable: odd argument count")
	}
	t := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic("twplug.NewTable: key is not a string")
		}
		t.Set(key, kv[i+1])
	}
	return t
}

// Lookup resolves a dotted path in data.
//
// An empty path yields def. A key equal to the whole path wins over the dotted
// walk, so "a.b" may name a single key. Missing intermediate levels and nil
// results fall back to def; a malformed path is never an error.
func Lookup(path string, data any, def any) any {
	if path == "" {
		return def
	}
	if v, ok := field(data, path); ok && v != nil {
		return v
	}

	cur := data
	for _, seg := range strings.Split(path, ".") {
		v, ok := field(cur, seg)
		if !ok {
			return def
		}
		cur = v
	}
	if cur == nil {
		return def
	}
	return cur
}

// field returns the direct child key of data.
func field(data any, key string) (any, bool) {
	switch d := data.(type) {
	case *Table:
		if d == nil {
			return nil, false
		}
		return d.Get(key)
	case map[string]any:
		v, ok := d[key]
		return v, ok
	case *Rule:
		n, ok := d.Get(key)
		if !ok {
			return nil, false
		}
		return n, true
	case *Config:
		if d == nil {
			return nil, false
		}
		return d.table().Get(key)
	}
	return nil, false
}

// asTable returns v as an ordered table. Plain maps are converted with sorted
// keys so iteration stays deterministic.
func asTable(v any) (*Table, bool) {
	switch t := v.(type) {
	case *Table:
		return t, t != nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := NewTable()
		for _, k := range keys {
			out.Set(k, t[k])
		}
		return out, true
	}
	return nil, false
}
