package du

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is wrapped by every ConfigError.
	ErrConfig = errors.New("invalid configuration")
	// ErrInvariant is wrapped by every InvariantError.
	ErrInvariant = errors.New("traversal invariant violated")
)

// ConfigError reports invalid options detected before traversal starts.
type ConfigError struct {
	// Field names the offending option.
	Field string
	// Reason describes what is wrong with it.
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %s: %s", ErrConfig, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrConfig }

// RootAccessError reports that a scan root could not be statted or listed.
// It is fatal for that root only.
type RootAccessError struct {
	Path string
	Err  error
}

func (e *RootAccessError) Error() string {
	return fmt.Sprintf("accessing root %q: %v", e.Path, e.Err)
}

func (e *RootAccessError) Unwrap() error { return e.Err }

// EntryError is a soft, per-entry failure. The entry contributes zero usage
// and the scan continues.
type EntryError struct {
	// Path is the entry that failed.
	Path string
	// Op is the failed operation ("stat" or "read directory").
	Op string
	// Err is the underlying OS error.
	Err error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *EntryError) Unwrap() error { return e.Err }

// Reason returns the underlying error text, used for structured output.
func (e *EntryError) Reason() string {
	if e.Err == nil {
		return ""
	}

	return e.Err.Error()
}

// InvariantError reports an internal traversal failure, such as a directory
// reappearing among its own ancestors.
type InvariantError struct {
	Path   string
	Reason string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("%v at %q: %s", ErrInvariant, e.Path, e.Reason)
}

func (e *InvariantError) Unwrap() error { return ErrInvariant }
