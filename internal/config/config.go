// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog"
)

// SecurityLevel is the default security level the application starts with.
type SecurityLevel string

const (
	SecurityLow        SecurityLevel = "low"
	SecurityMedium     SecurityLevel = "medium"
	SecurityHigh       SecurityLevel = "high"
	SecurityImpossible SecurityLevel = "impossible"
)

const (
	phpidsEnabled  = "enabled"
	phpidsDisabled = "disabled"

	redactedValue = "********"
)

// Configuration is the complete, immutable set of configuration entries for
// a process run. It is created by [Load] or [GetConfiguration] and never
// modified afterwards, so a single *Configuration may be shared between
// goroutines without synchronization.
type Configuration struct {
	values map[Key]string
}

// Load builds a Configuration from the compiled-in defaults with overrides
// applied by key.
//
// It fails with [ErrInvalidKey] when an override names a key outside the
// recognized set, and with [ErrMissingValue] when a recognized key ends up
// without a value.
func Load(overrides map[string]string) (*Configuration, error) {
	return newConfigBuilder(nil).
		withLayer(sourceOverrides, overrides).
		build()
}

// Get returns the text stored under key.
func (c *Configuration) Get(key Key) (string, error) {
	if _, ok := lookupKey(key); !ok {
		return "", newKeyError(ErrUnknownKey, key, "", "", nil)
	}
	return c.values[key], nil
}

// GetAsInt parses the value stored under an integer-typed key as a base-10
// integer.
func (c *Configuration) GetAsInt(key Key) (int, error) {
	value, err := c.typed(key, KindInt)
	if err != nil {
		return 0, err
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, newKeyError(ErrTypeConversion, key, "", value, err)
	}
	return n, nil
}

// GetAsBool interprets the value stored under a boolean-typed key.
// "true" and "1" are true; "false", "0" and "disabled" are false.
func (c *Configuration) GetAsBool(key Key) (bool, error) {
	value, err := c.typed(key, KindBool)
	if err != nil {
		return false, err
	}

	b, ok := parseBool(value)
	if !ok {
		return false, newKeyError(ErrTypeConversion, key, "", value,
			errors.New("not a boolean literal"))
	}
	return b, nil
}

// typed returns the raw value for key after checking that key is recognized
// and declared with the wanted kind.
func (c *Configuration) typed(key Key, want Kind) (string, error) {
	spec, ok := lookupKey(key)
	if !ok {
		return "", newKeyError(ErrUnknownKey, key, "", "", nil)
	}

	value := c.values[key]
	if spec.kind != want {
		return "", newKeyError(ErrTypeConversion, key, "", value,
			fmt.Errorf("key holds %s, not %s", spec.kind, want))
	}
	return value, nil
}

func parseBool(s string) (value, ok bool) {
	switch s {
	case "true", "1":
		return true, true
	case "false", "0", phpidsDisabled:
		return false, true
	default:
		return false, false
	}
}

// SecurityLevel returns the default security level.
func (c *Configuration) SecurityLevel() (SecurityLevel, error) {
	value, err := c.enum(KeySecurityLevel)
	if err != nil {
		return "", err
	}
	return SecurityLevel(value), nil
}

// PHPIDSEnabled reports whether PHPIDS starts enabled.
func (c *Configuration) PHPIDSEnabled() (bool, error) {
	value, err := c.enum(KeyPHPIDSLevel)
	if err != nil {
		return false, err
	}
	return value == phpidsEnabled, nil
}

// PHPIDSVerbose reports whether PHPIDS logs every event.
func (c *Configuration) PHPIDSVerbose() (bool, error) {
	return c.GetAsBool(KeyPHPIDSVerbose)
}

// DBPort returns the database port, checked to be a valid TCP port.
func (c *Configuration) DBPort() (int, error) {
	port, err := c.GetAsInt(KeyDBPort)
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, newKeyError(ErrInvalidValue, KeyDBPort, "", strconv.Itoa(port),
			errors.New("port must be in range 1..65535"))
	}
	return port, nil
}

// enum returns the value stored under an enum-typed key after checking that
// it is one of the key's allowed literals.
func (c *Configuration) enum(key Key) (string, error) {
	value, err := c.typed(key, KindEnum)
	if err != nil {
		return "", err
	}

	spec, _ := lookupKey(key)
	for _, allowed := range spec.enum {
		if value == allowed {
			return value, nil
		}
	}
	return "", newKeyError(ErrInvalidValue, key, "", value,
		fmt.Errorf("allowed values are %v", spec.enum))
}

// Keys returns the recognized keys in declaration order.
func (c *Configuration) Keys() []Key {
	return AllKeys()
}

// Values returns a copy of every entry keyed by its name.
func (c *Configuration) Values() map[string]string {
	m := make(map[string]string, len(c.values))
	for k, v := range c.values {
		m[string(k)] = v
	}
	return m
}

// Redacted returns a copy of every entry with non-empty secrets masked.
func (c *Configuration) Redacted() map[string]string {
	m := c.Values()
	for k, v := range m {
		if v != "" && IsSecret(Key(k)) {
			m[k] = redactedValue
		}
	}
	return m
}

// Equal reports whether c and other hold the same entries.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	if len(c.values) != len(other.values) {
		return false
	}
	for k, v := range c.values {
		if ov, ok := other.values[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MarshalZerologObject writes the redacted entries to a log event, so a
// Configuration can be passed to zerolog's Object without leaking secrets.
func (c *Configuration) MarshalZerologObject(e *zerolog.Event) {
	redacted := c.Redacted()
	for _, k := range AllKeys() {
		e.Str(string(k), redacted[string(k)])
	}
}
