// Package config handles loading and parsing of configuration from YAML files
// and environment variables. It defines the gateway configuration structure
// including server settings, the provider list, selection strategy, health
// check cadence and inference request bounds.
package config
