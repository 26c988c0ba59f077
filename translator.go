package twplug

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Extra carries the modifier passed to dynamic generators. An empty Modifier
// means no modifier.
type Extra struct {
	Modifier string
}

// UtilityFunc generates the rule block of a dynamic utility for one value.
// It may return nil to emit nothing.
type UtilityFunc func(value string, extra Extra) *Rule

// Utility names a dynamic utility generator.
type Utility struct {
	Name     string
	Generate UtilityFunc
}

// VariantFunc generates one or more selector templates for a dynamic variant.
type VariantFunc func(value string, extra Extra) []string

// Entry is one key/value pair of an ordered option table.
type Entry struct {
	Key   string
	Value string
}

// Pairs builds entries from alternating key/value strings.
// It panics if given an odd number of arguments.
func Pairs(kv ...string) []Entry {
	if len(kv)%2 == 1 {
		panic("twplug.Pairs: odd argument count")
	}
	out := make([]Entry, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		out = append(out, Entry{Key: kv[i], Value: kv[i+1]})
	}
	return out
}

// Ref wraps a single value reference, such as the result of API.Theme, as an
// option table.
func Ref(token string) []Entry {
	return []Entry{{Value: token}}
}

// MatchOptions configures MatchUtilities.
type MatchOptions struct {
	// Values are substituted for <value>, one rule per entry.
	Values []Entry
	// Modifiers are substituted for <modifier>; "--value(...)" references are
	// moved to the "--modifier(...)" namespace.
	Modifiers []Entry
	// Types add bare and arbitrary value fallbacks, e.g. "integer" or "length".
	Types []string
	// SupportsNegativeValues adds a "-<name>-*" utility with negated values.
	SupportsNegativeValues bool
}

// VariantOptions configures MatchVariant.
type VariantOptions struct {
	// Values maps variant names (Key) to the value substituted for <value>.
	Values []Entry
	// Sort passes "@slot" as the modifier instead of no modifier.
	Sort bool
}

// Translator implements the native plugin primitives. Every registration is
// appended to the sheet of the current invocation.
type Translator struct {
	sheet *Sheet
	cfg   *Config
	data  *Table
	log   *zap.Logger
}

func newTranslator(sheet *Sheet, cfg *Config, log *zap.Logger) *Translator {
	return &Translator{
		sheet: sheet,
		cfg:   cfg,
		data:  cfg.table(),
		log:   log,
	}
}

func (t *Translator) push(n Node) {
	t.sheet.Push(n)
}

// AddVariant registers a custom variant. def is a selector Line, a List of
// selectors joined into one statement, or a *Rule emitted as a block.
func (t *Translator) AddVariant(name string, def Node) {
	if def == nil {
		return
	}
	switch def.Kind() {
	case KindLine:
		t.push(Line(fmt.Sprintf("@custom-variant %s (%s);", name, def.(Line))))
	case KindList:
		t.push(Line(fmt.Sprintf("@custom-variant %s (%s);", name, strings.Join(lines(def), ", "))))
	case KindRule:
		t.push(R("@custom-variant "+name, def.(*Rule).Clone()))
	}
	t.log.Debug("addVariant", zap.String("name", name), zap.Stringer("kind", def.Kind()))
}

// AddBase registers rules in the base layer.
func (t *Translator) AddBase(rules ...*Rule) {
	t.push(R("@layer base", layerBlock(rules)))
	t.log.Debug("addBase", zap.Int("rules", len(rules)))
}

// AddComponents registers rules in the components layer.
func (t *Translator) AddComponents(rules ...*Rule) {
	t.push(R("@layer components", layerBlock(rules)))
	t.log.Debug("addComponents", zap.Int("rules", len(rules)))
}

// layerBlock shallow-merges rules in order and dash-cases their declarations.
func layerBlock(rules []*Rule) *Rule {
	block := NewRule()
	for _, r := range rules {
		r.Each(func(selector string, value Node) {
			block.Set(selector, dashNode(value))
		})
	}
	return block
}

// AddUtilities registers one @utility statement per selector. A leading "."
// is dropped from each selector.
func (t *Translator) AddUtilities(rules ...*Rule) {
	for _, r := range rules {
		r.Each(func(selector string, value Node) {
			name := strings.TrimPrefix(selector, ".")
			t.push(R("@utility "+name, dashNode(value)))
			t.log.Debug("addUtilities", zap.String("utility", name))
		})
	}
}

// MatchUtilities registers dynamic utilities.
//
// Each generator runs once with the <value> and <modifier> placeholders. The
// template is expanded once per modifier and once per value, and the results
// are merged into a single "@utility <name>-*" statement. With negative value
// support a second "@utility -<name>-*" statement holds the calc()-negated
// values. Generators must emit the placeholders they expect to be substituted.
func (t *Translator) MatchUtilities(utilities []Utility, opts MatchOptions) {
	vs := valueOptions(opts)
	for _, u := range utilities {
		if u.Generate == nil {
			continue
		}
		tmpl := u.Generate(ValuePlaceholder, Extra{Modifier: ModifierPlaceholder})
		if tmpl == nil {
			continue
		}
		tmpl = dashProperties(tmpl)

		if len(vs.modifiers) > 0 {
			variants := make([]*Rule, 0, len(vs.modifiers))
			for _, mod := range vs.modifiers {
				variants = append(variants, SubstituteRule(tmpl, ModifierPlaceholder, mod))
			}
			tmpl = MergeRules(variants...)
		}

		var positive, negative []*Rule
		for _, val := range vs.values {
			positive = append(positive, SubstituteRule(tmpl, ValuePlaceholder, val))
			if opts.SupportsNegativeValues {
				negative = append(negative, SubstituteRule(tmpl, ValuePlaceholder, "calc("+val+" * -1)"))
			}
		}

		body := tmpl
		if len(positive) > 0 {
			body = MergeRules(positive...)
		}
		t.push(R("@utility "+u.Name+"-*", body))
		if len(negative) > 0 {
			t.push(R("@utility -"+u.Name+"-*", MergeRules(negative...)))
		}
		t.log.Debug("matchUtilities",
			zap.String("utility", u.Name),
			zap.Int("values", len(vs.values)),
			zap.Int("modifiers", len(vs.modifiers)),
			zap.Bool("negative", len(negative) > 0))
	}
}

// MatchVariant registers a dynamic variant.
//
// With named values, one custom variant is emitted per (name, template) pair
// with the value substituted for <value>. Without them every template is
// emitted under name as-is, so such templates must not rely on <value>.
func (t *Translator) MatchVariant(name string, generate VariantFunc, opts VariantOptions) {
	if generate == nil {
		return
	}
	modifier := ""
	if opts.Sort {
		modifier = "@slot"
	}
	templates := generate(ValuePlaceholder, Extra{Modifier: modifier})

	for _, e := range opts.Values {
		for _, tmpl := range templates {
			sel := strings.ReplaceAll(tmpl, ValuePlaceholder, e.Value)
			t.push(Line(fmt.Sprintf("@custom-variant %s (%s);", e.Key, sel)))
		}
	}
	if len(opts.Values) == 0 {
		for _, tmpl := range templates {
			t.push(Line(fmt.Sprintf("@custom-variant %s (%s);", name, tmpl)))
		}
	}
	t.log.Debug("matchVariant",
		zap.String("name", name),
		zap.Int("templates", len(templates)),
		zap.Int("values", len(opts.Values)))
}

// MatchComponents is not supported and always fails.
func (t *Translator) MatchComponents(_ []Utility, _ MatchOptions) error {
	err := &UnsupportedError{Op: "matchComponents"}
	t.log.Debug("matchComponents", zap.Error(err))
	return err
}

// Config resolves a dotted path against the configuration.
func (t *Translator) Config(path string, def any) any {
	return Lookup(path, t.data, def)
}

// Prefix prepends the configured prefix to className.
func (t *Translator) Prefix(className string) string {
	return t.cfg.Prefix + className
}

// Theme returns a value-reference token for a theme path.
//
// Known namespaces resolve to their custom property group
// ("colors.red" -> "--value(--color-*)"); other roots present in the theme
// resolve to "--value(--<root>-*)". Unknown roots yield def.
func (t *Translator) Theme(path string, def string) string {
	if path == "" {
		return def
	}
	root, _, _ := strings.Cut(path, ".")
	if ns, ok := namespaces[root]; ok {
		return ValueRef(ns)
	}
	if t.themeHas(root) {
		return ValueRef("--" + DashCase(root) + "-*")
	}
	return def
}

func (t *Translator) themeHas(root string) bool {
	theme := t.cfg.Theme
	if theme == nil {
		return false
	}
	if v, ok := theme.Get(root); ok && v != nil {
		return true
	}
	ext, _ := theme.Get("extend")
	if table, ok := asTable(ext); ok {
		v, ok := table.Get(root)
		return ok && v != nil
	}
	return false
}

// Escape escapes a class name for a selector.
func (t *Translator) Escape(className string) string {
	return Escape(className)
}
