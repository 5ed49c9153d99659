// Package file provides file-based configuration storage for soilbio.
//
// Configuration lives in a TOML file in the soilbio config directory
// (~/.soilbio by default). Nested tables flatten to dot-notation keys,
// so the [constants] table surfaces as "constants.*" keys matching the
// services.Key* constants.
package file
