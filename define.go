package twplug

import (
	"fmt"

	"go.uber.org/zap"
)

// API is passed to a plugin. It combines the native primitives with the
// higher-level extensions, both writing into the same sheet.
type API struct {
	*Translator
	Extensions
}

// Plugin registers styles against the API. A returned error aborts Define.
type Plugin func(api *API) error

type options struct {
	log *zap.Logger
}

// Option configures Define.
type Option func(*options)

// WithLogger sets the logger used for debug output.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Define runs plugin once against cfg and returns the statements it produced.
//
// The import header (when a prefix or important is configured) and the @theme
// block (when a theme is configured) precede the plugin's own statements.
// A nil cfg is treated as the empty configuration.
func Define(plugin Plugin, cfg *Config, opts ...Option) (List, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.Named("plugin")

	if cfg == nil {
		cfg = &Config{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	sheet := &Sheet{}
	if head := cfg.header(); head != "" {
		sheet.Push(Line(head))
	}
	if cfg.Theme != nil {
		sheet.Push(R("@theme", NormalizeTheme(cfg.Theme)))
	}

	t := newTranslator(sheet, cfg, log)
	api := &API{Translator: t, Extensions: NewExtensions(t)}
	if plugin != nil {
		if err := plugin(api); err != nil {
			return nil, fmt.Errorf("plugin failed: %w", err)
		}
	}

	log.Debug("plugin translated", zap.Int("statements", sheet.Len()))
	return sheet.Statements(), nil
}

// Build runs Define and renders the result as JSON.
func Build(plugin Plugin, cfg *Config, opts ...Option) (string, error) {
	stmts, err := Define(plugin, cfg, opts...)
	if err != nil {
		return "", err
	}
	return RenderJSON(stmts), nil
}
