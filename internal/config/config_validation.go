// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validate checks that every entry satisfies its key's domain: integers and
// booleans parse, the port is a valid TCP port, and enum keys hold one of
// their allowed literals.
//
// Load does not call Validate; it is run by the process right after loading
// so that a bad value aborts startup before any consumer sees it.
//
// Returns nil if the configuration is valid, or all violations joined.
func (c *Configuration) Validate() error {
	var errs []error

	for _, spec := range keyTable {
		var err error
		switch spec.kind {
		case KindInt:
			_, err = c.GetAsInt(spec.key)
		case KindBool:
			_, err = c.GetAsBool(spec.key)
		case KindEnum:
			_, err = c.enum(spec.key)
		}
		if err != nil {
			errs = append(errs, err)
		}
	}

	if _, err := c.DBPort(); err != nil && !errors.Is(err, ErrTypeConversion) {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
