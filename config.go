package twplug

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DarkStrategy selects how dark-mode overrides are scoped.
type DarkStrategy string

// Dark-mode strategies
const (
	DarkMedia    DarkStrategy = "media"    // prefers-color-scheme media query
	DarkClass    DarkStrategy = "class"    // ancestor class, :is(.dark &)
	DarkSelector DarkStrategy = "selector" // &:where(.dark, .dark *)
	DarkVariant  DarkStrategy = "variant"  // one sibling rule per custom selector
)

// DefaultDarkSelector is used when a class, selector or variant strategy has no override.
const DefaultDarkSelector = ".dark"

// DarkMode is a strategy plus its optional override selectors.
type DarkMode struct {
	Strategy  DarkStrategy `yaml:"strategy" validate:"omitempty,oneof=media class selector variant"`
	Selectors []string     `yaml:"selectors" validate:"dive,required"`
}

func (m DarkMode) strategy() DarkStrategy {
	if m.Strategy == "" {
		return DarkMedia
	}
	return m.Strategy
}

func (m DarkMode) selector() string {
	if len(m.Selectors) > 0 {
		return m.Selectors[0]
	}
	return DefaultDarkSelector
}

func (m DarkMode) selectors() []string {
	if len(m.Selectors) > 0 {
		return m.Selectors
	}
	return []string{DefaultDarkSelector}
}

// Config is the read-only configuration snapshot a plugin runs against.
type Config struct {
	// Prefix is prepended to class names by API.Prefix and announced in the header.
	Prefix string `validate:"omitempty,alpha,lowercase"`
	// Important marks every utility !important in the header.
	Important bool
	// Theme is the theme configuration, optionally with an "extend" overlay.
	Theme *Table
	// DarkMode selects the dark-mode strategy; the zero value means media.
	DarkMode DarkMode
	// Extra holds any other keys reachable through API.Config.
	Extra *Table
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

// Validate checks the configuration and returns a *ConfigError on failure.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return &ConfigError{
			Field:   strings.TrimPrefix(first.Namespace(), "Config."),
			Message: fmt.Sprintf("failed %q check (value %v)", first.Tag(), first.Value()),
			Err:     err,
		}
	}
	return &ConfigError{Message: err.Error(), Err: err}
}

// table exposes the configuration as the data object API.Config walks.
// Only fields that are set are present, so unset fields fall back to defaults.
func (c *Config) table() *Table {
	t := NewTable()
	if c == nil {
		return t
	}
	if c.Prefix != "" {
		t.Set("prefix", c.Prefix)
	}
	if c.Important {
		t.Set("important", true)
	}
	if c.Theme != nil {
		t.Set("theme", c.Theme)
	}
	if c.DarkMode.Strategy != "" || len(c.DarkMode.Selectors) > 0 {
		t.Set("darkMode", c.DarkMode)
	}
	if c.Extra != nil {
		for el := c.Extra.Front(); el != nil; el = el.Next() {
			if !t.Has(el.Key) {
				t.Set(el.Key, el.Value)
			}
		}
	}
	return t
}

// header returns the stylesheet import line, or "" when neither prefix nor
// important is configured.
func (c *Config) header() string {
	if c == nil || (c.Prefix == "" && !c.Important) {
		return ""
	}
	head := `@import "tailwindcss"`
	if c.Important {
		head += " important"
	}
	if c.Prefix != "" {
		head += " prefix(" + c.Prefix + ")"
	}
	return head + ";"
}
