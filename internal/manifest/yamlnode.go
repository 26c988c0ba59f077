package manifest

import (
	"fmt"

	"github.com/yacobolo/twplug"
	"gopkg.in/yaml.v3"
)

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "nothing"
}

func deref(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

func expectMapping(n *yaml.Node) error {
	if n == nil || n.Kind != yaml.MappingNode {
		kind := yaml.Kind(0)
		line := 0
		if n != nil {
			kind, line = n.Kind, n.Line
		}
		return fmt.Errorf("line %d: expected a mapping, got %s", line, kindName(kind))
	}
	return nil
}

// ruleFromNode converts a YAML mapping into a rule block, keeping key order.
func ruleFromNode(n *yaml.Node) (*twplug.Rule, error) {
	n = deref(n)
	if err := expectMapping(n); err != nil {
		return nil, err
	}
	r := twplug.NewRule()
	for i := 0; i+1 < len(n.Content); i += 2 {
		value, err := nodeFromYAML(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Content[i].Value, err)
		}
		r.Set(n.Content[i].Value, value)
	}
	return r, nil
}

func nodeFromYAML(n *yaml.Node) (twplug.Node, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return twplug.Line(n.Value), nil
	case yaml.SequenceNode:
		list := make(twplug.List, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := nodeFromYAML(item)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
		return list, nil
	case yaml.MappingNode:
		return ruleFromNode(n)
	}
	return nil, fmt.Errorf("line %d: unexpected %s", n.Line, kindName(n.Kind))
}

// tableFromNode converts a YAML mapping into an ordered table. Scalars keep
// their YAML types so numbers and booleans survive config lookups.
func tableFromNode(n *yaml.Node) (*twplug.Table, error) {
	n = deref(n)
	if err := expectMapping(n); err != nil {
		return nil, err
	}
	t := twplug.NewTable()
	for i := 0; i+1 < len(n.Content); i += 2 {
		value, err := valueFromNode(n.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", n.Content[i].Value, err)
		}
		t.Set(n.Content[i].Value, value)
	}
	return t, nil
}

func valueFromNode(n *yaml.Node) (any, error) {
	n = deref(n)
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, item := range n.Content {
			v, err := valueFromNode(item)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		return tableFromNode(n)
	}
	return nil, fmt.Errorf("line %d: unexpected %s", n.Line, kindName(n.Kind))
}

// entriesFromNode reads an ordered name -> value mapping. An absent node
// yields no entries.
func entriesFromNode(n *yaml.Node) ([]twplug.Entry, error) {
	n = deref(n)
	if n == nil || n.Kind == 0 {
		return nil, nil
	}
	if err := expectMapping(n); err != nil {
		return nil, err
	}
	out := make([]twplug.Entry, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v := deref(n.Content[i+1])
		if v.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("line %d: value of %q must be a scalar", v.Line, n.Content[i].Value)
		}
		out = append(out, twplug.Entry{Key: n.Content[i].Value, Value: v.Value})
	}
	return out, nil
}
