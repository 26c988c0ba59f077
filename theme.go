package twplug

import (
	"fmt"
	"strings"
)

// namespaces maps legacy theme keys, and their singular aliases, to the custom
// property group that holds the same tokens.
var namespaces = map[string]string{
	"colors":                   "--color-*",
	"color":                    "--color-*",
	"spacing":                  "--spacing-*",
	"width":                    "--spacing-*",
	"height":                   "--spacing-*",
	"inset":                    "--spacing-*",
	"margin":                   "--spacing-*",
	"padding":                  "--spacing-*",
	"gap":                      "--spacing-*",
	"fontFamily":               "--font-*",
	"font":                     "--font-*",
	"fontSize":                 "--text-*",
	"text":                     "--text-*",
	"fontWeight":               "--font-weight-*",
	"letterSpacing":            "--tracking-*",
	"tracking":                 "--tracking-*",
	"lineHeight":               "--leading-*",
	"leading":                  "--leading-*",
	"borderRadius":             "--radius-*",
	"radius":                   "--radius-*",
	"boxShadow":                "--shadow-*",
	"shadow":                   "--shadow-*",
	"insetShadow":              "--inset-shadow-*",
	"dropShadow":               "--drop-shadow-*",
	"textShadow":               "--text-shadow-*",
	"blur":                     "--blur-*",
	"screens":                  "--breakpoint-*",
	"breakpoint":               "--breakpoint-*",
	"containers":               "--container-*",
	"container":                "--container-*",
	"animation":                "--animate-*",
	"animate":                  "--animate-*",
	"transitionTimingFunction": "--ease-*",
	"ease":                     "--ease-*",
	"perspective":              "--perspective-*",
	"aspectRatio":              "--aspect-*",
	"aspect":                   "--aspect-*",
}

// Namespace returns the custom property group for a theme key, e.g.
// "colors" -> "--color-*".
func Namespace(key string) (string, bool) {
	ns, ok := namespaces[key]
	return ns, ok
}

// ValueRef returns the value-reference token for a custom property group.
func ValueRef(group string) string {
	return "--value(" + group + ")"
}

// NormalizeTheme flattens a theme configuration into custom property
// declarations suitable for an @theme block.
//
// Entries under "extend" merge onto the base category of the same name, with
// extension keys winning. Known categories use their namespace as prefix
// (colors.brand -> --color-brand); others use the dash-cased category name.
func NormalizeTheme(theme *Table) *Rule {
	out := NewRule()
	if theme == nil {
		return out
	}

	base := NewTable()
	extensions := NewTable()
	for el := theme.Front(); el != nil; el = el.Next() {
		if el.Key == "extend" {
			if ext, ok := asTable(el.Value); ok {
				for e := ext.Front(); e != nil; e = e.Next() {
					extensions.Set(e.Key, e.Value)
				}
			}
			continue
		}
		base.Set(el.Key, el.Value)
	}

	for el := extensions.Front(); el != nil; el = el.Next() {
		current, _ := base.Get(el.Key)
		baseTable, baseOK := asTable(resolve(current))
		extTable, extOK := asTable(resolve(el.Value))
		if !baseOK || !extOK {
			base.Set(el.Key, el.Value)
			continue
		}
		merged := baseTable.Copy()
		for e := extTable.Front(); e != nil; e = e.Next() {
			merged.Set(e.Key, e.Value)
		}
		base.Set(el.Key, merged)
	}

	for el := base.Front(); el != nil; el = el.Next() {
		flattenToken(out, categoryPrefix(el.Key), el.Value)
	}
	return out
}

func categoryPrefix(key string) string {
	if ns, ok := namespaces[key]; ok {
		return strings.TrimSuffix(ns, "-*")
	}
	return "--" + DashCase(key)
}

func flattenToken(out *Rule, name string, value any) {
	value = resolve(value)
	table, ok := asTable(value)
	if !ok {
		out.Set(name, Line(normalizeValue(value)))
		return
	}
	for el := table.Front(); el != nil; el = el.Next() {
		child := name
		if el.Key != "DEFAULT" {
			child = name + "-" + DashCase(el.Key)
		}
		flattenToken(out, child, el.Value)
	}
}

// resolve calls value producers until a plain value remains.
func resolve(v any) any {
	for {
		switch fn := v.(type) {
		case func() any:
			v = fn()
		case func() string:
			return fn()
		default:
			return v
		}
	}
}

// normalizeValue renders a token value: producers are invoked and lists are
// joined with ", ".
func normalizeValue(v any) string {
	switch x := resolve(v).(type) {
	case nil:
		return ""
	case string:
		return x
	case []string:
		return strings.Join(x, ", ")
	case []any:
		parts := make([]string, len(x))
		for i, item := range x {
			parts[i] = normalizeValue(item)
		}
		return strings.Join(parts, ", ")
	case Line:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
