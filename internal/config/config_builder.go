package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"dario.cat/mergo"
	"github.com/MKhiriev/dvwa-config/internal/logger"
)

// Layer names reported in errors and logs.
const (
	sourceDefaults  = "defaults"
	sourceFile      = "file"
	sourceEnv       = "env"
	sourceFlags     = "flags"
	sourceOverrides = "overrides"
)

// sourceRank orders layers from lowest to highest precedence, independent of
// the order in which the builder collected them.
var sourceRank = map[string]int{
	sourceDefaults:  0,
	sourceFile:      1,
	sourceEnv:       2,
	sourceFlags:     3,
	sourceOverrides: 3,
}

type layer struct {
	source string
	values map[string]string
}

type configBuilder struct {
	defaults map[string]string
	layers   []layer

	envFilePath  string
	flagFilePath string

	logger *logger.Logger
	err    error
}

func newConfigBuilder(log *logger.Logger) *configBuilder {
	if log == nil {
		log = logger.Nop()
	}

	return &configBuilder{
		defaults: Defaults(),
		layers:   make([]layer, 0, 4),
		logger:   log,
	}
}

// GetConfiguration loads the process configuration from all available
// sources. The override file path is taken from the -c/-config flag, or
// from DVWA_CONFIG when no flag is given.
//
// Precedence, lowest to highest: defaults, override file, environment
// variables, -set flags. The returned Configuration has not been passed
// through [Configuration.Validate].
func GetConfiguration(flags *Flags, log *logger.Logger) (*Configuration, error) {
	return newConfigBuilder(log).
		withEnv().
		withFlags(flags).
		withFile().
		build()
}

func (b *configBuilder) build() (*Configuration, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occurred during building config: %w", b.err)
	}

	layers := slices.Clone(b.layers)
	slices.SortStableFunc(layers, func(a, c layer) int {
		return sourceRank[a.source] - sourceRank[c.source]
	})

	var errs []error
	for _, l := range layers {
		for _, k := range slices.Sorted(maps.Keys(l.values)) {
			if !IsKnown(Key(k)) {
				errs = append(errs, newKeyError(ErrInvalidKey, Key(k), l.source, "", nil))
			}
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	merged := maps.Clone(b.defaults)
	if merged == nil {
		merged = make(map[string]string, len(keyTable))
	}
	for _, l := range layers {
		if err := mergo.Merge(&merged, l.values, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("error merging %s configs: %w", l.source, err)
		}
		b.logger.Debug().
			Str("source", l.source).
			Strs("keys", slices.Sorted(maps.Keys(l.values))).
			Msg("configuration layer applied")
	}

	values := make(map[Key]string, len(keyTable))
	for _, spec := range keyTable {
		v, ok := merged[string(spec.key)]
		if !ok {
			errs = append(errs, newKeyError(ErrMissingValue, spec.key, "", "", nil))
			continue
		}
		values[spec.key] = v
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Configuration{values: values}, nil
}

func (b *configBuilder) withLayer(source string, values map[string]string) *configBuilder {
	if len(values) == 0 {
		return b
	}

	b.layers = append(b.layers, layer{source: source, values: values})
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	envCfg, err := parseEnv()
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.envFilePath = envCfg.FilePath
	return b.withLayer(sourceEnv, envCfg.overrides())
}

func (b *configBuilder) withFlags(flags *Flags) *configBuilder {
	if flags == nil {
		return b
	}

	b.flagFilePath = flags.ConfigPath
	return b.withLayer(sourceFlags, flags.Overrides)
}

func (b *configBuilder) withFile() *configBuilder {
	path := b.flagFilePath
	if path == "" {
		path = b.envFilePath
	}
	if path == "" {
		return b
	}

	values, err := ReadFile(path)
	if err != nil {
		b.err = errors.Join(b.err, err)
		return b
	}

	b.logger.Debug().Str("path", path).Msg("override file read")
	return b.withLayer(sourceFile, values)
}
