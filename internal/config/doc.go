// Package config provides loading, merging, and validation of the training
// application's configuration.
//
// The configuration is a closed set of ten text-valued keys (database
// connection parameters, reCAPTCHA keys, and the default security and PHPIDS
// settings). Values are assembled from the following layers, later layers
// overriding earlier ones key by key:
//  1. Compiled-in defaults
//  2. Override file (JSON or YAML)
//  3. Environment variables (DVWA_<KEY>)
//  4. Command-line flags (-set key=value)
//
// The result is an immutable [Configuration] that is handed to consumers
// explicitly. Values keep their textual form; callers read numbers and
// booleans through the typed accessors instead of parsing strings themselves.
//
// The main entry points are [Load] for programmatic overrides and
// [GetConfiguration] for process startup.
package config
