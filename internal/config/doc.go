// Package config loads, normalizes, and validates movielog configuration.
//
// It supplies defaults, expands user paths (including tilde shortcuts), reads
// TOML files, and honours environment fallbacks such as OMDB_API_KEY and
// MOVIELOG_VAULT. Commands obtain every knob through Config so they see
// expanded paths, canonical log formats, and clear validation errors.
package config
