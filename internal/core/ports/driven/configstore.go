package driven

// ConfigStore persists user configuration: scaling-constant overrides
// and output options. Backed by a TOML file in the soilbio config
// directory.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value, or "" when
	// absent or not a string.
	GetString(key string) string

	// GetFloat retrieves a numeric configuration value, or 0 when
	// absent or not numeric.
	GetFloat(key string) float64

	// Set stores a configuration value.
	Set(key string, value any) error

	// Delete removes a configuration value.
	Delete(key string) error

	// Keys returns all configured keys.
	Keys() []string
}
