// Package config loads, normalizes, and validates sortdir configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the SORTDIR_STATE_DIR environment
// fallback. Category overrides are normalized to lower-case dotted extensions
// here so the classification table never sees raw user input.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
