package twplug

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDefineEndToEnd(t *testing.T) {
	cfg := &Config{
		Prefix: "tw",
		Theme:  NewTable("colors", NewTable("brand", "#123456")),
	}

	stmts, err := Define(func(api *API) error {
		api.AddUtilities(R(".btn", R("backgroundColor", "var(--color-brand)")))
		return nil
	}, cfg)
	require.NoError(t, err)

	assertNode(t, List{
		Line(`@import "tailwindcss" prefix(tw);`),
		R("@theme", R("--color-brand", "#123456")),
		R("@utility btn", R("background-color", "var(--color-brand)")),
	}, stmts)
}

func TestDefineHeader(t *testing.T) {
	tests := []struct {
		name string
		cfg  *Config
		want []string
	}{
		{name: "nil config", cfg: nil, want: nil},
		{name: "empty config", cfg: &Config{}, want: nil},
		{name: "prefix", cfg: &Config{Prefix: "tw"}, want: []string{`@import "tailwindcss" prefix(tw);`}},
		{name: "important", cfg: &Config{Important: true}, want: []string{`@import "tailwindcss" important;`}},
		{
			name: "important and prefix",
			cfg:  &Config{Important: true, Prefix: "ui"},
			want: []string{`@import "tailwindcss" important prefix(ui);`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmts, err := Define(nil, tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, lines(stmts))
		})
	}
}

func TestDefineEmptyThemeStillEmitsBlock(t *testing.T) {
	stmts, err := Define(nil, &Config{Theme: NewTable()})
	require.NoError(t, err)
	assertNode(t, List{R("@theme", R())}, stmts)
}

func TestDefineRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name  string
		cfg   *Config
		field string
	}{
		{name: "unknown dark strategy", cfg: &Config{DarkMode: DarkMode{Strategy: "sometimes"}}, field: "DarkMode.Strategy"},
		{name: "upper case prefix", cfg: &Config{Prefix: "TW"}, field: "Prefix"},
		{name: "prefix with dash", cfg: &Config{Prefix: "tw-"}, field: "Prefix"},
		{name: "empty override selector", cfg: &Config{DarkMode: DarkMode{Selectors: []string{""}}}, field: "DarkMode.Selectors[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			_, err := Define(func(*API) error {
				called = true
				return nil
			}, tt.cfg)

			var cfgErr *ConfigError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
			assert.False(t, called, "plugin must not run on invalid config")
		})
	}
}

func TestDefinePluginError(t *testing.T) {
	boom := errors.New("boom")
	stmts, err := Define(func(api *API) error {
		api.AddVariant("hocus", Line("&:hover"))
		return boom
	}, nil)

	assert.Nil(t, stmts)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "plugin failed: boom", err.Error())
}

func TestDefineInvocationsAreIndependent(t *testing.T) {
	plugin := func(api *API) error {
		api.AddVariant("hocus", Line("&:hover"))
		return nil
	}

	first, err := Define(plugin, nil)
	require.NoError(t, err)
	second, err := Define(plugin, nil)
	require.NoError(t, err)

	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestDefineLogsThroughNamedLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, err := Define(func(api *API) error {
		api.AddUtilities(R(".btn", R("color", "red")))
		return nil
	}, nil, WithLogger(zap.New(core)))
	require.NoError(t, err)

	entries := logs.Filter(func(e observer.LoggedEntry) bool {
		return e.LoggerName == "plugin"
	}).All()
	require.NotEmpty(t, entries)
	assert.Equal(t, "addUtilities", entries[0].Message)
	assert.Equal(t, "plugin translated", entries[len(entries)-1].Message)
}

func TestBuild(t *testing.T) {
	out, err := Build(func(api *API) error {
		api.AddVariant("hocus", List{Line("&:hover"), Line("&:focus")})
		return nil
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "[\n    \"@custom-variant hocus (&:hover, &:focus);\"\n]", out)
}
