// Package config loads and validates the revq configuration file.
//
// The file is YAML, found at $REVQ_CONFIG, $XDG_CONFIG_HOME/revq/config.yml
// or ~/.config/revq/config.yml. The effective configuration is built by
// merging defaults <- file <- environment <- CLI overrides, then validated
// fail-fast: a configuration without at least one well-formed server entry
// is rejected before anything is queried.
package config
