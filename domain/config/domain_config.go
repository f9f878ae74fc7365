package config

import (
	"fmt"
	"time"
)

// DomainConfig holds the configurable business rules
type DomainConfig struct {
	// Search result limits
	SearchDefaultLimit int `yaml:"search_default_limit"`
	SearchMaxLimit     int `yaml:"search_max_limit"`

	// Lifetime of presigned upload and playback URLs
	PresignTTL time.Duration `yaml:"presign_ttl"`
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() DomainConfig {
	return DomainConfig{
		SearchDefaultLimit: 50,
		SearchMaxLimit:     100,
		PresignTTL:         time.Hour,
	}
}

// Validate validates the domain configuration
func (c DomainConfig) Validate() error {
	if c.SearchDefaultLimit <= 0 {
		return fmt.Errorf("search default limit must be positive, got %d", c.SearchDefaultLimit)
	}
	if c.SearchMaxLimit < c.SearchDefaultLimit {
		return fmt.Errorf("search max limit %d is below the default %d", c.SearchMaxLimit, c.SearchDefaultLimit)
	}
	// S3 SigV4 presigned URLs are valid for at most seven days
	if c.PresignTTL < time.Second || c.PresignTTL > 7*24*time.Hour {
		return fmt.Errorf("presign TTL %s out of range", c.PresignTTL)
	}
	return nil
}
