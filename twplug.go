// Package twplug translates stylesheet plugins into an ordered list of CSS statements.
//
// A plugin is a Go function that registers base styles, components, utilities and
// variants against an API value. twplug runs the plugin once and records every
// registration as a statement node, ready to be serialized into a stylesheet that
// uses at-rules such as @theme, @utility and @custom-variant.
//
// # Defining a plugin
//
//	stmts, err := twplug.Define(func(api *twplug.API) error {
//		api.AddUtilities(twplug.R(".btn", twplug.R("backgroundColor", "var(--color-brand)")))
//		return nil
//	}, &twplug.Config{Prefix: "tw"})
//
// # Rendering
//
// The statement list renders as indented JSON (RenderJSON), as stylesheet text
// (RenderCSS) or as a tree for inspection (RenderTree). Rendering is stable: the
// same statements always produce byte-identical output.
//
// # CLI Tool
//
// twplug also provides a CLI that translates declarative YAML plugin manifests:
//
//	go install github.com/yacobolo/twplug/cmd/twplug@latest
package twplug

// Public API:
// - Define(plugin Plugin, cfg *Config, opts ...Option) (List, error)
// - Build(plugin Plugin, cfg *Config, opts ...Option) (string, error)
// - RenderJSON / RenderCSS / RenderTree(stmts List) string
// - NormalizeTheme(theme *Table) *Rule
// - ResolveDark(mode DarkMode, light, dark *Rule) Node
