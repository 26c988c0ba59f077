package twplug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run translates plugin against cfg and fails the test on error.
func run(t *testing.T, cfg *Config, plugin Plugin) List {
	t.Helper()
	stmts, err := Define(plugin, cfg)
	require.NoError(t, err)
	return stmts
}

func TestAddVariant(t *testing.T) {
	tests := []struct {
		name string
		def  Node
		want Node
	}{
		{
			name: "single selector",
			def:  Line("&:hover"),
			want: Line("@custom-variant hocus (&:hover);"),
		},
		{
			name: "selector list",
			def:  List{Line("&:hover"), Line("&:focus")},
			want: Line("@custom-variant hocus (&:hover, &:focus);"),
		},
		{
			name: "block",
			def:  R("&:hover", R("@slot", R())),
			want: R("@custom-variant hocus", R("&:hover", R("@slot", R()))),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := run(t, nil, func(api *API) error {
				api.AddVariant("hocus", tt.def)
				return nil
			})
			require.Len(t, stmts, 1)
			assertNode(t, tt.want, stmts[0])
		})
	}
}

func TestAddBaseAndComponents(t *testing.T) {
	stmts := run(t, nil, func(api *API) error {
		api.AddBase(R("h1", R(
			"fontSize", "2rem",
			"&:hover", R("textDecorationLine", "underline"),
		)))
		api.AddComponents(
			R(".card", R("borderRadius", "4px")),
			R(".card", R("boxShadow", "none"), ".badge", R("fontWeight", "600")),
		)
		return nil
	})

	require.Len(t, stmts, 2)
	assertNode(t, R("@layer base", R("h1", R(
		"font-size", "2rem",
		"&:hover", R("text-decoration-line", "underline"),
	))), stmts[0])
	// later writes to the same selector replace earlier ones
	assertNode(t, R("@layer components", R(
		".card", R("box-shadow", "none"),
		".badge", R("font-weight", "600"),
	)), stmts[1])
}

func TestAddUtilities(t *testing.T) {
	stmts := run(t, nil, func(api *API) error {
		api.AddUtilities(R(
			".content-auto", R("contentVisibility", "auto"),
			".scrollbar-none", R("scrollbarWidth", "none"),
		))
		return nil
	})

	assertNode(t, List{
		R("@utility content-auto", R("content-visibility", "auto")),
		R("@utility scrollbar-none", R("scrollbar-width", "none")),
	}, stmts)
}

func TestMatchUtilities(t *testing.T) {
	tabSize := []Utility{{
		Name: "tab",
		Generate: func(value string, _ Extra) *Rule {
			return R("tabSize", value)
		},
	}}

	tests := []struct {
		name string
		opts MatchOptions
		want List
	}{
		{
			name: "values without negatives",
			opts: MatchOptions{Values: Pairs("sm", "1px", "lg", "2px")},
			want: List{
				R("@utility tab-*", R("tab-size", []string{"1px", "2px"})),
			},
		},
		{
			name: "values with negatives",
			opts: MatchOptions{Values: Pairs("sm", "1px", "lg", "2px"), SupportsNegativeValues: true},
			want: List{
				R("@utility tab-*", R("tab-size", []string{"1px", "2px"})),
				R("@utility -tab-*", R("tab-size", []string{"calc(1px * -1)", "calc(2px * -1)"})),
			},
		},
		{
			name: "no values keeps the template",
			opts: MatchOptions{},
			want: List{
				R("@utility tab-*", R("tab-size", "<value>")),
			},
		},
		{
			name: "types add fallbacks",
			opts: MatchOptions{Types: []string{"integer"}},
			want: List{
				R("@utility tab-*", R("tab-size", []string{"--value(integer)", "--value([integer])"})),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts := run(t, nil, func(api *API) error {
				api.MatchUtilities(tabSize, tt.opts)
				return nil
			})
			assertNode(t, tt.want, stmts)
		})
	}
}

func TestMatchUtilitiesWithThemeValuesAndModifiers(t *testing.T) {
	stmts := run(t, nil, func(api *API) error {
		api.MatchUtilities([]Utility{{
			Name: "text",
			Generate: func(value string, extra Extra) *Rule {
				return R("fontSize", value, "lineHeight", extra.Modifier)
			},
		}}, MatchOptions{
			Values:    Ref(api.Theme("fontSize", "")),
			Modifiers: Ref(api.Theme("lineHeight", "")),
		})
		return nil
	})

	assertNode(t, List{
		R("@utility text-*", R(
			"font-size", "--value(--text-*)",
			"line-height", "--modifier(--leading-*)",
		)),
	}, stmts)
}

func TestMatchUtilitiesSkipsNilTemplates(t *testing.T) {
	stmts := run(t, nil, func(api *API) error {
		api.MatchUtilities([]Utility{
			{Name: "none"},
			{Name: "empty", Generate: func(string, Extra) *Rule { return nil }},
		}, MatchOptions{Values: Pairs("a", "1")})
		return nil
	})
	assert.Empty(t, stmts)
}

func TestMatchVariant(t *testing.T) {
	nth := func(value string, _ Extra) []string {
		return []string{"&:nth-child(" + value + ")"}
	}

	t.Run("named values", func(t *testing.T) {
		stmts := run(t, nil, func(api *API) error {
			api.MatchVariant("nth", nth, VariantOptions{Values: Pairs("first", "1", "third", "3")})
			return nil
		})
		assertNode(t, List{
			Line("@custom-variant first (&:nth-child(1));"),
			Line("@custom-variant third (&:nth-child(3));"),
		}, stmts)
	})

	t.Run("no values", func(t *testing.T) {
		stmts := run(t, nil, func(api *API) error {
			api.MatchVariant("pointer", func(string, Extra) []string {
				return []string{"@media (pointer: fine)"}
			}, VariantOptions{})
			return nil
		})
		assertNode(t, List{Line("@custom-variant pointer (@media (pointer: fine));")}, stmts)
	})

	t.Run("sort passes slot modifier", func(t *testing.T) {
		var got []string
		run(t, nil, func(api *API) error {
			api.MatchVariant("x", func(value string, extra Extra) []string {
				got = append(got, extra.Modifier)
				return nil
			}, VariantOptions{Sort: true})
			api.MatchVariant("y", func(value string, extra Extra) []string {
				got = append(got, extra.Modifier)
				return nil
			}, VariantOptions{})
			return nil
		})
		assert.Equal(t, []string{"@slot", ""}, got)
	})
}

func TestMatchComponentsIsNotImplemented(t *testing.T) {
	var callErr error
	_, err := Define(func(api *API) error {
		callErr = api.MatchComponents(nil, MatchOptions{})
		return callErr
	}, nil)

	require.Error(t, callErr)
	assert.True(t, errors.Is(callErr, ErrNotImplemented))
	assert.Contains(t, callErr.Error(), "matchComponents")

	var unsupported *UnsupportedError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "matchComponents", unsupported.Op)
	assert.Contains(t, err.Error(), "plugin failed")
}

func TestConfigPrefixTheme(t *testing.T) {
	cfg := &Config{
		Prefix: "tw",
		Theme: NewTable(
			"extend", NewTable("tabSize", NewTable("wide", "8")),
		),
		DarkMode: DarkMode{Strategy: DarkClass},
		Extra:    NewTable("future", NewTable("hoverOnlyWhenSupported", true)),
	}

	run(t, cfg, func(api *API) error {
		assert.Equal(t, "tw", api.Config("prefix", ""))
		assert.Equal(t, true, api.Config("future.hoverOnlyWhenSupported", false))
		assert.Equal(t, 7, api.Config("missing.path", 7))
		assert.Equal(t, "fallback", api.Config("", "fallback"))

		assert.Equal(t, "twbtn", api.Prefix("btn"))

		assert.Equal(t, "--value(--color-*)", api.Theme("colors.red.500", ""))
		assert.Equal(t, "--value(--spacing-*)", api.Theme("width", ""))
		assert.Equal(t, "--value(--tab-size-*)", api.Theme("tabSize", ""))
		assert.Equal(t, "8px", api.Theme("unknown", "8px"))
		assert.Equal(t, "", api.Theme("unknown", ""))
		assert.Equal(t, "none", api.Theme("", "none"))

		assert.Equal(t, DarkClass, api.DarkMode().Strategy)
		return nil
	})
}
