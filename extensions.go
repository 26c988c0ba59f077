package twplug

import "strings"

// Host is the minimal capability set the higher-level operations are built on.
// *Translator implements it.
type Host interface {
	AddBase(rules ...*Rule)
	AddComponents(rules ...*Rule)
	AddUtilities(rules ...*Rule)
	Escape(className string) string
	Config(path string, def any) any
}

// Extensions implements the higher-level plugin operations purely in terms of a Host.
type Extensions struct {
	host Host
}

// NewExtensions binds the higher-level operations to host.
func NewExtensions(host Host) Extensions {
	return Extensions{host: host}
}

// AddVar declares a custom property --<prefix>-<name> on :root in the base
// layer. The prefix defaults to "tw".
func (x Extensions) AddVar(name, value string, prefix ...string) {
	p := "tw"
	if len(prefix) > 0 && prefix[0] != "" {
		p = prefix[0]
	}
	x.host.AddBase(R(":root", R("--"+p+"-"+name, value)))
}

// DarkMode returns the configured dark mode. The strategy is read on every
// call since override selectors differ per call site.
func (x Extensions) DarkMode() DarkMode {
	return darkModeOf(x.host.Config("darkMode", nil))
}

// AddDark adds a component keyed by selector whose dark rule is scoped by the
// configured dark-mode strategy. overrides replace the configured selectors
// for this call only.
func (x Extensions) AddDark(selector string, light, dark *Rule, overrides ...string) {
	mode := x.DarkMode()
	if len(overrides) > 0 {
		mode.Selectors = overrides
	}
	x.host.AddComponents(R(selector, ResolveDark(mode, light, dark)))
}

// AddDarkComponent is AddDark for a class name.
func (x Extensions) AddDarkComponent(className string, light, dark *Rule, overrides ...string) {
	x.AddDark(x.classSelector(className), light, dark, overrides...)
}

// Gradient describes a linear gradient background.
type Gradient struct {
	// Direction defaults to "to right".
	Direction string
	Stops     []string
	// Interpolation is the color space of the modern declaration; defaults to "oklab".
	Interpolation string
}

// Declarations returns the background-image declarations: an sRGB fallback
// followed by the interpolated form.
func (g Gradient) Declarations() List {
	dir := g.Direction
	if dir == "" {
		dir = "to right"
	}
	space := g.Interpolation
	if space == "" {
		space = "oklab"
	}
	stops := strings.Join(g.Stops, ", ")
	return List{
		Line("linear-gradient(" + dir + ", " + stops + ")"),
		Line("linear-gradient(" + dir + " in " + space + ", " + stops + ")"),
	}
}

// Rule returns the gradient as a declaration block.
func (g Gradient) Rule() *Rule {
	return R("background-image", g.Declarations())
}

// AddGradient adds a gradient background component for className.
func (x Extensions) AddGradient(className string, g Gradient) {
	x.host.AddComponents(R(x.classSelector(className), g.Rule()))
}

// AddGradientUtility adds a gradient background utility.
func (x Extensions) AddGradientUtility(name string, g Gradient) {
	x.host.AddUtilities(R(name, g.Rule()))
}

// AddDarkGradient adds a gradient component with a dark-mode gradient override.
func (x Extensions) AddDarkGradient(className string, light, dark Gradient, overrides ...string) {
	x.AddDarkComponent(className, light.Rule(), dark.Rule(), overrides...)
}

func (x Extensions) classSelector(className string) string {
	return "." + x.host.Escape(strings.TrimPrefix(className, "."))
}
