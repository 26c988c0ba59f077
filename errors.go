package twplug

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is matched by errors.Is for operations that are stubs.
var ErrNotImplemented = errors.New("not implemented")

// UnsupportedError reports a call to an operation the translator does not provide.
type UnsupportedError struct {
	Op string
}

func (e *UnsupportedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("`%s` is not implemented yet", e.Op)
}

// Unwrap exposes ErrNotImplemented.
func (e *UnsupportedError) Unwrap() error {
	return ErrNotImplemented
}

// ConfigError captures configuration validation issues.
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ConfigError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
