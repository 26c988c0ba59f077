package manifest

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/yacobolo/twplug"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type runFunc = func(api *twplug.API) error

type builder func(n *yaml.Node) (runFunc, error)

// builders maps each operation key to the decoder of its arguments.
var builders = map[string]builder{
	"addBase":            rulesStep(func(api *twplug.API, r *twplug.Rule) { api.AddBase(r) }),
	"addComponents":      rulesStep(func(api *twplug.API, r *twplug.Rule) { api.AddComponents(r) }),
	"addUtilities":       rulesStep(func(api *twplug.API, r *twplug.Rule) { api.AddUtilities(r) }),
	"addVariant":         buildAddVariant,
	"matchUtilities":     buildMatchUtilities,
	"matchComponents":    buildMatchComponents,
	"matchVariant":       buildMatchVariant,
	"addVar":             buildAddVar,
	"addDark":            buildAddDark,
	"addDarkComponent":   buildAddDarkComponent,
	"addGradient":        buildAddGradient,
	"addGradientUtility": buildAddGradientUtility,
	"addDarkGradient":    buildAddDarkGradient,
}

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New(validator.WithRequiredStructEnabled())
	})
	return validateInst
}

// decode unmarshals n into a step struct and validates it. Every failing
// field is reported.
func decode(n *yaml.Node, out any) error {
	if err := expectMapping(n); err != nil {
		return err
	}
	if err := n.Decode(out); err != nil {
		return err
	}
	err := validatorInstance().Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	var errs error
	for _, fe := range verrs {
		errs = multierr.Append(errs, fmt.Errorf("%s: failed %q check", fe.Field(), fe.Tag()))
	}
	return errs
}

func rulesStep(apply func(api *twplug.API, r *twplug.Rule)) builder {
	return func(n *yaml.Node) (runFunc, error) {
		rule, err := ruleFromNode(n)
		if err != nil {
			return nil, err
		}
		return func(api *twplug.API) error {
			apply(api, rule)
			return nil
		}, nil
	}
}

type variantStep struct {
	Name      string    `yaml:"name" validate:"required"`
	Selector  string    `yaml:"selector"`
	Selectors []string  `yaml:"selectors" validate:"omitempty,dive,required"`
	Block     yaml.Node `yaml:"block" validate:"-"`
}

func buildAddVariant(n *yaml.Node) (runFunc, error) {
	var s variantStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}

	forms := 0
	var def twplug.Node
	if s.Selector != "" {
		forms++
		def = twplug.Line(s.Selector)
	}
	if len(s.Selectors) > 0 {
		forms++
		def = twplug.ToNode(s.Selectors)
	}
	if s.Block.Kind != 0 {
		forms++
		block, err := ruleFromNode(&s.Block)
		if err != nil {
			return nil, fmt.Errorf("block: %w", err)
		}
		def = block
	}
	if forms != 1 {
		return nil, errors.New("exactly one of selector, selectors or block is required")
	}

	return func(api *twplug.API) error {
		api.AddVariant(s.Name, def)
		return nil
	}, nil
}

type matchUtilitiesStep struct {
	Name                   string    `yaml:"name" validate:"required"`
	Template               yaml.Node `yaml:"template" validate:"-"`
	Values                 yaml.Node `yaml:"values" validate:"-"`
	Theme                  string    `yaml:"theme"`
	Modifiers              yaml.Node `yaml:"modifiers" validate:"-"`
	ModifierTheme          string    `yaml:"modifierTheme"`
	Types                  []string  `yaml:"types" validate:"dive,oneof=any integer number percentage ratio length color angle url image position"`
	SupportsNegativeValues bool      `yaml:"supportsNegativeValues"`
}

// options resolves theme references against the running plugin's theme.
func (s *matchUtilitiesStep) options(api *twplug.API, values, modifiers []twplug.Entry) twplug.MatchOptions {
	opts := twplug.MatchOptions{
		Values:                 values,
		Modifiers:              modifiers,
		Types:                  s.Types,
		SupportsNegativeValues: s.SupportsNegativeValues,
	}
	if s.Theme != "" {
		if ref := api.Theme(s.Theme, ""); ref != "" {
			opts.Values = append(opts.Values, twplug.Ref(ref)...)
		}
	}
	if s.ModifierTheme != "" {
		if ref := api.Theme(s.ModifierTheme, ""); ref != "" {
			opts.Modifiers = append(opts.Modifiers, twplug.Ref(ref)...)
		}
	}
	return opts
}

func decodeMatchUtilities(n *yaml.Node) (*matchUtilitiesStep, *twplug.Rule, []twplug.Entry, []twplug.Entry, error) {
	var s matchUtilitiesStep
	if err := decode(n, &s); err != nil {
		return nil, nil, nil, nil, err
	}
	tmpl, err := ruleFromNode(&s.Template)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("template: %w", err)
	}
	values, err := entriesFromNode(&s.Values)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("values: %w", err)
	}
	modifiers, err := entriesFromNode(&s.Modifiers)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("modifiers: %w", err)
	}
	return &s, tmpl, values, modifiers, nil
}

// templateUtility returns a utility whose generator yields the template as
// written; placeholders in it are substituted by the translator.
func templateUtility(name string, tmpl *twplug.Rule) []twplug.Utility {
	return []twplug.Utility{{
		Name: name,
		Generate: func(string, twplug.Extra) *twplug.Rule {
			return tmpl.Clone()
		},
	}}
}

func buildMatchUtilities(n *yaml.Node) (runFunc, error) {
	s, tmpl, values, modifiers, err := decodeMatchUtilities(n)
	if err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.MatchUtilities(templateUtility(s.Name, tmpl), s.options(api, values, modifiers))
		return nil
	}, nil
}

func buildMatchComponents(n *yaml.Node) (runFunc, error) {
	s, tmpl, values, modifiers, err := decodeMatchUtilities(n)
	if err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		return api.MatchComponents(templateUtility(s.Name, tmpl), s.options(api, values, modifiers))
	}, nil
}

type matchVariantStep struct {
	Name      string    `yaml:"name" validate:"required"`
	Selectors []string  `yaml:"selectors" validate:"required,min=1,dive,required"`
	Values    yaml.Node `yaml:"values" validate:"-"`
	Sort      bool      `yaml:"sort"`
}

func buildMatchVariant(n *yaml.Node) (runFunc, error) {
	var s matchVariantStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	values, err := entriesFromNode(&s.Values)
	if err != nil {
		return nil, fmt.Errorf("values: %w", err)
	}
	return func(api *twplug.API) error {
		api.MatchVariant(s.Name, func(string, twplug.Extra) []string {
			return append([]string(nil), s.Selectors...)
		}, twplug.VariantOptions{Values: values, Sort: s.Sort})
		return nil
	}, nil
}

type varStep struct {
	Name   string `yaml:"name" validate:"required"`
	Value  string `yaml:"value" validate:"required"`
	Prefix string `yaml:"prefix"`
}

func buildAddVar(n *yaml.Node) (runFunc, error) {
	var s varStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.AddVar(s.Name, s.Value, s.Prefix)
		return nil
	}, nil
}

type darkRules struct {
	Light     yaml.Node `yaml:"light" validate:"-"`
	Dark      yaml.Node `yaml:"dark" validate:"-"`
	Selectors []string  `yaml:"selectors" validate:"omitempty,dive,required"`
}

func (d *darkRules) rules() (light, dark *twplug.Rule, err error) {
	light, err = ruleFromNode(&d.Light)
	if err != nil {
		return nil, nil, fmt.Errorf("light: %w", err)
	}
	if d.Dark.Kind != 0 {
		dark, err = ruleFromNode(&d.Dark)
		if err != nil {
			return nil, nil, fmt.Errorf("dark: %w", err)
		}
	}
	return light, dark, nil
}

type darkStep struct {
	Selector  string `yaml:"selector" validate:"required"`
	darkRules `yaml:",inline"`
}

func buildAddDark(n *yaml.Node) (runFunc, error) {
	var s darkStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	light, dark, err := s.rules()
	if err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.AddDark(s.Selector, light, dark, s.Selectors...)
		return nil
	}, nil
}

type darkComponentStep struct {
	Class     string `yaml:"class" validate:"required"`
	darkRules `yaml:",inline"`
}

func buildAddDarkComponent(n *yaml.Node) (runFunc, error) {
	var s darkComponentStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	light, dark, err := s.rules()
	if err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.AddDarkComponent(s.Class, light, dark, s.Selectors...)
		return nil
	}, nil
}

type gradientSpec struct {
	Direction     string   `yaml:"direction"`
	Stops         []string `yaml:"stops" validate:"min=2,dive,required"`
	Interpolation string   `yaml:"interpolation"`
}

func (g gradientSpec) gradient() twplug.Gradient {
	return twplug.Gradient{Direction: g.Direction, Stops: g.Stops, Interpolation: g.Interpolation}
}

type gradientStep struct {
	Class        string `yaml:"class" validate:"required"`
	gradientSpec `yaml:",inline"`
}

func buildAddGradient(n *yaml.Node) (runFunc, error) {
	var s gradientStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.AddGradient(s.Class, s.gradient())
		return nil
	}, nil
}

type gradientUtilityStep struct {
	Name         string `yaml:"name" validate:"required"`
	gradientSpec `yaml:",inline"`
}

func buildAddGradientUtility(n *yaml.Node) (runFunc, error) {
	var s gradientUtilityStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.AddGradientUtility(s.Name, s.gradient())
		return nil
	}, nil
}

type darkGradientStep struct {
	Class     string       `yaml:"class" validate:"required"`
	Light     gradientSpec `yaml:"light"`
	Dark      gradientSpec `yaml:"dark"`
	Selectors []string     `yaml:"selectors" validate:"omitempty,dive,required"`
}

func buildAddDarkGradient(n *yaml.Node) (runFunc, error) {
	var s darkGradientStep
	if err := decode(n, &s); err != nil {
		return nil, err
	}
	return func(api *twplug.API) error {
		api.AddDarkGradient(s.Class, s.Light.gradient(), s.Dark.gradient(), s.Selectors...)
		return nil
	}, nil
}
