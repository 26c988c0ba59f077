package twplug

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/xlab/treeprint"
)

const jsonIndent = "    "

// RenderJSON serializes statements as JSON indented by four spaces, keeping
// rule keys in insertion order. HTML characters are not escaped.
func RenderJSON(stmts List) string {
	var b strings.Builder
	writeJSON(&b, stmts, 0)
	return b.String()
}

func writeJSON(b *strings.Builder, n Node, depth int) {
	switch v := n.(type) {
	case Line:
		b.WriteString(quoteJSON(string(v)))
	case List:
		if len(v) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[\n")
		for i, item := range v {
			b.WriteString(strings.Repeat(jsonIndent, depth+1))
			writeJSON(b, item, depth+1)
			if i < len(v)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(jsonIndent, depth))
		b.WriteByte(']')
	case *Rule:
		if v.Len() == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{\n")
		i := 0
		v.Each(func(key string, value Node) {
			b.WriteString(strings.Repeat(jsonIndent, depth+1))
			b.WriteString(quoteJSON(key))
			b.WriteString(": ")
			writeJSON(b, value, depth+1)
			if i < v.Len()-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
			i++
		})
		b.WriteString(strings.Repeat(jsonIndent, depth))
		b.WriteByte('}')
	default:
		b.WriteString("null")
	}
}

func quoteJSON(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}

// RenderCSS serializes statements as stylesheet text. Line statements are
// written verbatim; rule blocks become nested blocks indented by two spaces;
// a List under one key repeats the key for every item.
func RenderCSS(stmts List) string {
	var b strings.Builder
	for i, stmt := range stmts {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeCSSStatement(&b, stmt)
	}
	return b.String()
}

func writeCSSStatement(b *strings.Builder, n Node) {
	switch v := n.(type) {
	case Line:
		b.WriteString(string(v))
		b.WriteByte('\n')
	case List:
		for _, item := range v {
			writeCSSStatement(b, item)
		}
	case *Rule:
		v.Each(func(key string, value Node) {
			writeCSSEntry(b, key, value, 0)
		})
	}
}

func writeCSSEntry(b *strings.Builder, key string, n Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case Line:
		b.WriteString(indent + key + ": " + string(v) + ";\n")
	case List:
		for _, item := range v {
			writeCSSEntry(b, key, item, depth)
		}
	case *Rule:
		b.WriteString(indent + key + " {\n")
		v.Each(func(k string, value Node) {
			writeCSSEntry(b, k, value, depth+1)
		})
		b.WriteString(indent + "}\n")
	}
}

// RenderTree draws statements as a tree, one branch per block.
func RenderTree(stmts List) string {
	tree := treeprint.NewWithRoot("stylesheet")
	for _, stmt := range stmts {
		addTreeStatement(tree, stmt)
	}
	return tree.String()
}

func addTreeStatement(tree treeprint.Tree, n Node) {
	switch v := n.(type) {
	case Line:
		tree.AddNode(string(v))
	case List:
		for _, item := range v {
			addTreeStatement(tree, item)
		}
	case *Rule:
		v.Each(func(key string, value Node) {
			addTreeEntry(tree, key, value)
		})
	}
}

func addTreeEntry(tree treeprint.Tree, key string, n Node) {
	switch v := n.(type) {
	case Line:
		tree.AddNode(key + ": " + string(v))
	case List:
		for _, item := range v {
			addTreeEntry(tree, key, item)
		}
	case *Rule:
		branch := tree.AddBranch(key)
		v.Each(func(k string, value Node) {
			addTreeEntry(branch, k, value)
		})
	}
}
