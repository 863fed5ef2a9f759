package config

import (
	"errors"
	"fmt"
)

// Sentinel errors reported by the loader and the accessors. Every key-related
// failure is a [*KeyError] whose Unwrap returns one of these, so callers
// match with errors.Is and extract the key with errors.As.
var (
	// ErrInvalidKey indicates that an override references a key outside the
	// recognized set.
	ErrInvalidKey = errors.New("invalid configuration key")
	// ErrMissingValue indicates that a recognized key has no value after
	// defaults and overrides are merged.
	ErrMissingValue = errors.New("missing configuration value")
	// ErrUnknownKey indicates a lookup of a key outside the recognized set.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrTypeConversion indicates that a typed accessor was applied to a key
	// of another kind or to text that does not parse as that type.
	ErrTypeConversion = errors.New("configuration value type conversion failed")
	// ErrInvalidValue indicates that a value parses but violates the key's
	// domain (for example an unknown security level or port 0).
	ErrInvalidValue = errors.New("invalid configuration value")
	// ErrUnsupportedFormat indicates a persisted layout file with an
	// extension other than .json, .yaml or .yml.
	ErrUnsupportedFormat = errors.New("unsupported configuration file format")
)

// KeyError reports a failure tied to a single configuration key.
type KeyError struct {
	// Key is the offending key as given by the caller or the override layer.
	Key string
	// Source names the layer the key came from ("file", "env", "flags", ...).
	// Empty for accessor failures.
	Source string
	// Value is the offending value. Empty when the key is secret.
	Value string
	// Err is one of the package sentinel errors.
	Err error
	// Cause is the underlying parse error, if any.
	Cause error
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	msg := fmt.Sprintf("%s %q", e.Err, e.Key)
	if e.Source != "" {
		msg += " from " + e.Source
	}
	if e.Value != "" {
		msg += fmt.Sprintf(": value %q", e.Value)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the sentinel error and the cause.
func (e *KeyError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func newKeyError(sentinel error, key Key, source, value string, cause error) *KeyError {
	if IsSecret(key) {
		value = ""
	}
	return &KeyError{
		Key:    string(key),
		Source: source,
		Value:  value,
		Err:    sentinel,
		Cause:  cause,
	}
}

// ErrorKey returns the key named by the first [*KeyError] in err's tree, or
// an empty string.
func ErrorKey(err error) string {
	var keyErr *KeyError
	if errors.As(err, &keyErr) {
		return keyErr.Key
	}
	return ""
}
