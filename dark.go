package twplug

// darkMediaQuery wraps dark rules for the media strategy.
const darkMediaQuery = "@media (prefers-color-scheme: dark)"

// ResolveDark nests a dark rule into a light rule according to mode.
//
// Media, class and selector strategies return one rule. The variant strategy
// returns one sibling rule per override selector, each holding the full light
// rule plus its own nested dark rule; a single selector still yields a plain
// rule. A nil dark rule returns the light rule alone.
func ResolveDark(mode DarkMode, light, dark *Rule) Node {
	if light == nil {
		light = NewRule()
	}
	if dark == nil {
		return light.Clone()
	}

	switch mode.strategy() {
	case DarkClass:
		return light.Clone().Set(":is("+mode.selector()+" &)", dark.Clone())
	case DarkSelector:
		sel := mode.selector()
		return light.Clone().Set("&:where("+sel+", "+sel+" *)", dark.Clone())
	case DarkVariant:
		sels := mode.selectors()
		if len(sels) == 1 {
			return light.Clone().Set(sels[0], dark.Clone())
		}
		siblings := make(List, 0, len(sels))
		for _, sel := range sels {
			siblings = append(siblings, light.Clone().Set(sel, dark.Clone()))
		}
		return siblings
	default:
		return light.Clone().Set(darkMediaQuery, R("&", dark.Clone()))
	}
}

// darkModeOf reads a configured dark mode value, defaulting to media.
func darkModeOf(v any) DarkMode {
	switch m := v.(type) {
	case DarkMode:
		return m
	case *DarkMode:
		if m != nil {
			return *m
		}
	case string:
		return DarkMode{Strategy: DarkStrategy(m)}
	}
	return DarkMode{Strategy: DarkMedia}
}
