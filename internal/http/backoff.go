package http

import (
	"time"
)

// BackoffConfig configures exponential backoff between model fetch attempts
type BackoffConfig struct {
	BaseDelay  time.Duration // Delay before the first retry
	MaxDelay   time.Duration // Maximum delay cap
	Multiplier float64       // Growth factor per attempt (typically 2.0)
}

// DefaultBackoffConfig returns the backoff used by remote model providers
func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		BaseDelay:  200 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2.0,
	}
}

// CalculateBackoff returns the delay before retry number attempt (1-indexed):
// BaseDelay * Multiplier^(attempt-1), capped at MaxDelay.
func CalculateBackoff(config BackoffConfig, attempt int) time.Duration {
	if attempt <= 1 {
		return capDelay(config.BaseDelay, config.MaxDelay)
	}
	if config.Multiplier < 1 {
		config.Multiplier = 1
	}

	delay := float64(config.BaseDelay)
	for i := 1; i < attempt; i++ {
		delay *= config.Multiplier
		if config.MaxDelay > 0 && delay >= float64(config.MaxDelay) {
			return config.MaxDelay
		}
	}
	return capDelay(time.Duration(delay), config.MaxDelay)
}

func capDelay(d, limit time.Duration) time.Duration {
	if limit > 0 && d > limit {
		return limit
	}
	return d
}
