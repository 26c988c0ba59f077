// Package manifest reads declarative plugin descriptions from YAML and turns
// them into plugins.
//
// A manifest looks like:
//
//	name: buttons
//	config:
//	  prefix: tw
//	  darkMode: class
//	  theme:
//	    colors:
//	      brand: "#123456"
//	steps:
//	  - addUtilities:
//	      .btn:
//	        backgroundColor: var(--color-brand)
//	  - matchUtilities:
//	      name: tab
//	      template: {tabSize: <value>}
//	      values: {sm: 1px, lg: 2px}
//
// Steps run in order against the plugin API. Mapping keys keep their
// document order, which becomes the emission order.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yacobolo/twplug"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Manifest is a decoded plugin description.
type Manifest struct {
	Name   string
	Path   string
	Config *twplug.Config
	Steps  []Step
}

// StepError locates an invalid step in the manifest document.
type StepError struct {
	Index  int // 1-based
	Line   int
	Column int
	Err    error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d, line %d: %v", e.Index, e.Line, e.Err)
}

// Unwrap exposes the underlying error.
func (e *StepError) Unwrap() error {
	return e.Err
}

// Step is one plugin API call.
type Step struct {
	Op   string
	Line int
	run  func(api *twplug.API) error
}

// Load reads and decodes the manifest at path. The manifest name defaults to
// the file name without its extensions.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Path = path
	if m.Name == "" {
		m.Name = baseName(path)
	}
	return m, nil
}

func baseName(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i > 0 {
		name = name[:i]
	}
	return name
}

// Parse decodes a manifest document. Every invalid step is reported; the
// returned error combines them and can be split with multierr.Errors.
func Parse(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, errors.New("empty manifest")
	}
	root := deref(doc.Content[0])
	if err := expectMapping(root); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}

	m := &Manifest{Config: &twplug.Config{}}
	var errs error
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i].Value, root.Content[i+1]
		switch key {
		case "name":
			if err := value.Decode(&m.Name); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("name: %w", err))
			}
		case "config":
			cfg, err := configFromNode(value)
			if err != nil {
				errs = multierr.Append(errs, fmt.Errorf("config: %w", err))
				continue
			}
			m.Config = cfg
		case "steps":
			steps, err := stepsFromNode(value)
			errs = multierr.Append(errs, err)
			m.Steps = steps
		default:
			errs = multierr.Append(errs, fmt.Errorf("line %d: unknown key %q", root.Content[i].Line, key))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return m, nil
}

// Plugin returns a plugin that replays the manifest steps in order.
func (m *Manifest) Plugin() twplug.Plugin {
	return func(api *twplug.API) error {
		for i, s := range m.Steps {
			if err := s.run(api); err != nil {
				return fmt.Errorf("step %d (%s): %w", i+1, s.Op, err)
			}
		}
		return nil
	}
}

// Define translates the manifest with its own configuration.
func (m *Manifest) Define(opts ...twplug.Option) (twplug.List, error) {
	return twplug.Define(m.Plugin(), m.Config, opts...)
}

func configFromNode(n *yaml.Node) (*twplug.Config, error) {
	n = deref(n)
	if err := expectMapping(n); err != nil {
		return nil, err
	}

	cfg := &twplug.Config{}
	var errs error
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, value := n.Content[i].Value, deref(n.Content[i+1])
		var err error
		switch key {
		case "prefix":
			err = value.Decode(&cfg.Prefix)
		case "important":
			err = value.Decode(&cfg.Important)
		case "theme":
			cfg.Theme, err = tableFromNode(value)
		case "darkMode":
			if value.Kind == yaml.ScalarNode {
				cfg.DarkMode.Strategy = twplug.DarkStrategy(value.Value)
			} else {
				err = value.Decode(&cfg.DarkMode)
			}
		default:
			var v any
			v, err = valueFromNode(value)
			if err == nil {
				if cfg.Extra == nil {
					cfg.Extra = twplug.NewTable()
				}
				cfg.Extra.Set(key, v)
			}
		}
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return cfg, nil
}

func stepsFromNode(n *yaml.Node) ([]Step, error) {
	n = deref(n)
	if n.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("steps: line %d: expected a sequence, got %s", n.Line, kindName(n.Kind))
	}

	steps := make([]Step, 0, len(n.Content))
	var errs error
	for i, item := range n.Content {
		step, err := stepFromNode(deref(item))
		if err != nil {
			errs = multierr.Append(errs, &StepError{Index: i + 1, Line: item.Line, Column: item.Column, Err: err})
			continue
		}
		steps = append(steps, step)
	}
	return steps, errs
}

func stepFromNode(n *yaml.Node) (Step, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return Step{}, errors.New("a step is a mapping with exactly one operation key")
	}
	op := n.Content[0].Value
	build, ok := builders[op]
	if !ok {
		return Step{}, fmt.Errorf("unknown operation %q", op)
	}
	run, err := build(deref(n.Content[1]))
	if err != nil {
		return Step{}, fmt.Errorf("%s: %w", op, err)
	}
	return Step{Op: op, Line: n.Line, run: run}, nil
}
