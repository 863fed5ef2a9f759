// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// envPrefix is prepended to every environment variable the loader reads.
const envPrefix = "DVWA_"

// EnvConfig holds the overrides read from environment variables. Every field
// maps to the recognized key of the same name in upper case, prefixed with
// DVWA_. Variables that are unset or empty leave the key untouched.
type EnvConfig struct {
	// FilePath is the optional override file.
	// Env: DVWA_CONFIG
	FilePath string `env:"CONFIG"`

	DBServer            string `env:"DB_SERVER"`
	DBDatabase          string `env:"DB_DATABASE"`
	DBUser              string `env:"DB_USER"`
	DBPassword          string `env:"DB_PASSWORD"`
	DBPort              string `env:"DB_PORT"`
	RecaptchaPublicKey  string `env:"RECAPTCHA_PUBLIC_KEY"`
	RecaptchaPrivateKey string `env:"RECAPTCHA_PRIVATE_KEY"`
	SecurityLevel       string `env:"DEFAULT_SECURITY_LEVEL"`
	PHPIDSLevel         string `env:"DEFAULT_PHPIDS_LEVEL"`
	PHPIDSVerbose       string `env:"DEFAULT_PHPIDS_VERBOSE"`
}

// parseEnv populates an EnvConfig from environment variables using the
// caarlos0/env library.
//
// Returns a wrapped error if env.ParseWithOptions fails.
func parseEnv() (*EnvConfig, error) {
	cfg := &EnvConfig{}
	err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	return cfg, nil
}

// overrides returns the non-empty fields keyed by configuration key.
func (e *EnvConfig) overrides() map[string]string {
	fields := map[Key]string{
		KeyDBServer:            e.DBServer,
		KeyDBDatabase:          e.DBDatabase,
		KeyDBUser:              e.DBUser,
		KeyDBPassword:          e.DBPassword,
		KeyDBPort:              e.DBPort,
		KeyRecaptchaPublicKey:  e.RecaptchaPublicKey,
		KeyRecaptchaPrivateKey: e.RecaptchaPrivateKey,
		KeySecurityLevel:       e.SecurityLevel,
		KeyPHPIDSLevel:         e.PHPIDSLevel,
		KeyPHPIDSVerbose:       e.PHPIDSVerbose,
	}

	m := make(map[string]string)
	for k, v := range fields {
		if v != "" {
			m[string(k)] = v
		}
	}
	return m
}
