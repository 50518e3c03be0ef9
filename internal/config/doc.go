// Package config loads and validates the fetcher's YAML configuration,
// with ${VAR} environment expansion and defaults for every optional field.
package config
