// Package config handles configuration for tracedb: defaults, the YAML
// config file, XDG paths and validation.
package config
