package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// Format is a persisted layout encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the layout encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// ReadFile reads a flat key to text mapping from path. Keys are not checked
// here; the loader rejects unrecognized ones.
func ReadFile(path string) (map[string]string, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading a config file: %w", err)
	}

	return Unmarshal(data, format)
}

// Unmarshal decodes a flat key to text mapping. Every value must be a
// non-null text scalar, and a key may appear only once.
func Unmarshal(data []byte, format Format) (map[string]string, error) {
	switch format {
	case FormatJSON:
		values, err := decodeJSON(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding json configs: %w", err)
		}
		return values, nil
	case FormatYAML:
		values, err := decodeYAML(data)
		if err != nil {
			return nil, fmt.Errorf("error decoding yaml configs: %w", err)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// decodeJSON walks the top-level object token by token so repeated keys are
// seen instead of silently keeping the last one.
func decodeJSON(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("top-level value must be an object")
	}

	values := make(map[string]string)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, errors.New("object key must be a string")
		}
		if _, seen := values[key]; seen {
			return nil, newKeyError(ErrInvalidKey, Key(key), sourceFile, "", errors.New("key repeated"))
		}

		var value *string
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		if value == nil {
			return nil, newKeyError(ErrInvalidValue, Key(key), sourceFile, "", errors.New("value is null"))
		}
		values[key] = *value
	}

	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return values, nil
}

// decodeYAML keeps every value as a node first so nulls and nested values
// can be told apart from text. yaml.v3 rejects repeated keys itself.
func decodeYAML(data []byte) (map[string]string, error) {
	var nodes map[string]yaml.Node
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, err
	}

	values := make(map[string]string, len(nodes))
	for _, key := range slices.Sorted(maps.Keys(nodes)) {
		node := nodes[key]
		if node.Kind != yaml.ScalarNode {
			return nil, newKeyError(ErrInvalidValue, Key(key), sourceFile, "", errors.New("value is not a scalar"))
		}
		if node.ShortTag() == "!!null" {
			return nil, newKeyError(ErrInvalidValue, Key(key), sourceFile, "", errors.New("value is null"))
		}

		var value string
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		values[key] = value
	}
	return values, nil
}

// Marshal encodes every entry of cfg as text in the given layout. Values
// that are not valid UTF-8 are rejected, since JSON would silently replace
// the offending bytes.
func Marshal(cfg *Configuration, format Format) ([]byte, error) {
	values := cfg.Values()
	for _, key := range AllKeys() {
		if v := values[string(key)]; !utf8.ValidString(v) {
			return nil, newKeyError(ErrInvalidValue, key, "", v, errors.New("value is not valid UTF-8"))
		}
	}

	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(values, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error encoding json configs: %w", err)
		}
		return append(data, '\n'), nil
	case FormatYAML:
		data, err := yaml.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("error encoding yaml configs: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// WriteFile writes every entry of cfg to path in the layout matching its
// extension. The file holds secrets and is created with mode 0600.
func WriteFile(path string, cfg *Configuration) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Marshal(cfg, format)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("error writing a config file: %w", err)
	}
	return nil
}
