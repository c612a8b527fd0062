package config

import (
	"github.com/dictcore/ding/internal/dicterr"
)

// Validator applies sanity checks and smart defaults to a loaded Config.
type Validator struct{}

// NewValidator creates a new configuration validator.
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateAndSetDefaults checks cfg for invalid combinations and fills in
// any zero-valued fields with their defaults.
func (v *Validator) ValidateAndSetDefaults(cfg *Config) error {
	if cfg.Depth <= 0 {
		cfg.Depth = Default().Depth
	}
	if cfg.Minimum <= 0 {
		cfg.Minimum = Default().Minimum
	}
	if cfg.Minimum > cfg.Depth {
		return dicterr.NewConfigError("index.minimum", "", errMinimumExceedsDepth)
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = Default().MaxResults
	}
	if cfg.MinHitsBeforeRetry <= 0 {
		cfg.MinHitsBeforeRetry = Default().MinHitsBeforeRetry
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = Default().CacheTTL
	}
	if cfg.CacheMaxEntries <= 0 {
		cfg.CacheMaxEntries = Default().CacheMaxEntries
	}
	return nil
}

var errMinimumExceedsDepth = simpleError("index.minimum must be <= index.depth")

type simpleError string

func (e simpleError) Error() string { return string(e) }
