// Package config loads and validates retag's TOML configuration.
//
// Load resolves the file path (explicit flag, then ~/.config/retag/
// config.toml, then ./retag.toml), decodes it over the repository defaults,
// normalizes paths and enum values, and validates the result. A missing
// file is not an error; defaults apply.
package config
