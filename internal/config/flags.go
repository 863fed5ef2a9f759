package config

import (
	"errors"
	"flag"
	"io"
	"maps"
	"slices"
	"strings"
)

// Flags holds the command-line options of a process that loads the
// configuration.
type Flags struct {
	// ConfigPath is the override file given with -c or -config.
	ConfigPath string
	// Overrides holds the -set key=value pairs, later pairs winning.
	Overrides map[string]string
	// DumpPath is the file the loaded configuration is written to, if set.
	DumpPath string
	// Validate enables the semantic checks of [Configuration.Validate].
	Validate bool
	// LogLevel is the zerolog level name for process logs.
	LogLevel string
}

// OverrideList collects repeated key=value flags.
// It implements the flag.Value interface.
type OverrideList map[string]string

// ParseFlags parses all configuration flags from args (without the program
// name).
//
// Flags:
//
//	-c/-config override file path (.json, .yaml, .yml)
//	-set key=value override, repeatable
//	-dump write the loaded configuration to this path
//	-validate run semantic validation after loading (default true)
//	-log-level log level (debug, info, warn, error)
func ParseFlags(name string, args []string, output io.Writer) (*Flags, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	if output != nil {
		fs.SetOutput(output)
	}

	flags := &Flags{Overrides: make(map[string]string)}

	fs.StringVar(&flags.ConfigPath, "c", "", "Override file path")
	fs.StringVar(&flags.ConfigPath, "config", "", "Override file path (alias)")
	fs.Var(OverrideList(flags.Overrides), "set", "Override in a form `key=value` (repeatable)")
	fs.StringVar(&flags.DumpPath, "dump", "", "Write the loaded configuration to this file")
	fs.BoolVar(&flags.Validate, "validate", true, "Validate values after loading")
	fs.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return flags, nil
}

// String returns the pairs as a comma-separated key=value list sorted by key.
func (o OverrideList) String() string {
	pairs := make([]string, 0, len(o))
	for _, k := range slices.Sorted(maps.Keys(o)) {
		pairs = append(pairs, k+"="+o[k])
	}
	return strings.Join(pairs, ",")
}

// Set parses a single key=value pair. The key must be non-empty; the value
// may be empty and may itself contain '='.
func (o OverrideList) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok {
		return errors.New("need override in a form `key=value`")
	}

	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("override key is empty")
	}

	o[key] = value
	return nil
}
