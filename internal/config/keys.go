// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

// Key identifies a single configuration entry.
type Key string

// Recognized configuration keys.
const (
	KeyDBServer            Key = "db_server"
	KeyDBDatabase          Key = "db_database"
	KeyDBUser              Key = "db_user"
	KeyDBPassword          Key = "db_password"
	KeyDBPort              Key = "db_port"
	KeyRecaptchaPublicKey  Key = "recaptcha_public_key"
	KeyRecaptchaPrivateKey Key = "recaptcha_private_key"
	KeySecurityLevel       Key = "default_security_level"
	KeyPHPIDSLevel         Key = "default_phpids_level"
	KeyPHPIDSVerbose       Key = "default_phpids_verbose"
)

// Kind is the semantic type of the text stored under a key.
type Kind int

const (
	KindString Kind = iota // free-form text
	KindInt                // base-10 integer literal
	KindBool               // boolean literal
	KindEnum               // one of a fixed set of literals
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "integer"
	case KindBool:
		return "boolean"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// keySpec describes one row of the defaults table.
type keySpec struct {
	key          Key
	defaultValue string
	kind         Kind
	secret       bool
	enum         []string
}

// keyTable is the closed set of recognized keys in declaration order.
var keyTable = []keySpec{
	{key: KeyDBServer, defaultValue: "localhost", kind: KindString},
	{key: KeyDBDatabase, defaultValue: "dvwa", kind: KindString},
	{key: KeyDBUser, defaultValue: "dvwa", kind: KindString},
	{key: KeyDBPassword, defaultValue: "p@ssw0rd", kind: KindString, secret: true},
	{key: KeyDBPort, defaultValue: "3306", kind: KindInt},
	{key: KeyRecaptchaPublicKey, defaultValue: "", kind: KindString, secret: true},
	{key: KeyRecaptchaPrivateKey, defaultValue: "", kind: KindString, secret: true},
	{key: KeySecurityLevel, defaultValue: "low", kind: KindEnum, enum: []string{
		string(SecurityLow), string(SecurityMedium), string(SecurityHigh), string(SecurityImpossible),
	}},
	{key: KeyPHPIDSLevel, defaultValue: "disabled", kind: KindEnum, enum: []string{
		phpidsEnabled, phpidsDisabled,
	}},
	{key: KeyPHPIDSVerbose, defaultValue: "false", kind: KindBool},
}

var keyIndex = func() map[Key]keySpec {
	m := make(map[Key]keySpec, len(keyTable))
	for _, spec := range keyTable {
		m[spec.key] = spec
	}
	return m
}()

func lookupKey(k Key) (keySpec, bool) {
	spec, ok := keyIndex[k]
	return spec, ok
}

// IsKnown reports whether k belongs to the recognized key set.
func IsKnown(k Key) bool {
	_, ok := keyIndex[k]
	return ok
}

// IsSecret reports whether the value stored under k must not be logged.
func IsSecret(k Key) bool {
	return keyIndex[k].secret
}

// AllKeys returns every recognized key in declaration order.
func AllKeys() []Key {
	keys := make([]Key, len(keyTable))
	for i, spec := range keyTable {
		keys[i] = spec.key
	}
	return keys
}

// Defaults returns a fresh copy of the compiled-in default table.
func Defaults() map[string]string {
	m := make(map[string]string, len(keyTable))
	for _, spec := range keyTable {
		m[string(spec.key)] = spec.defaultValue
	}
	return m
}
