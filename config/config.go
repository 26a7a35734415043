package config

import "fmt"

// Config is the single record that governs default retry budgets and
// backoff behavior, per spec.md §3.
type Config struct {
	MaxRetries      uint32  `json:"max_retries"`
	BackoffBase     float64 `json:"backoff_base"`
	BackoffMaxDelay float64 `json:"backoff_max_delay"`
}

// Default returns the spec-mandated defaults: max_retries=3,
// backoff_base=2.0, backoff_max_delay=3600 seconds.
func Default() *Config {
	return &Config{
		MaxRetries:      3,
		BackoffBase:     2.0,
		BackoffMaxDelay: 3600,
	}
}

// Validate checks the constraints spec.md §3 places on each field.
func (c *Config) Validate() error {
	if c.BackoffBase <= 1.0 {
		return fmt.Errorf("config: backoff_base must be > 1.0, got %v", c.BackoffBase)
	}
	if c.BackoffMaxDelay < 1 {
		return fmt.Errorf("config: backoff_max_delay must be >= 1 second, got %v", c.BackoffMaxDelay)
	}
	return nil
}

// Keys recognized by `config set`.
const (
	KeyMaxRetries      = "max-retries"
	KeyBackoffBase     = "backoff-base"
	KeyBackoffMaxDelay = "backoff-max-delay"
)

// Set applies a CLI `config set <key> <value>` assignment, parsing value
// according to key and re-validating the resulting record.
func (c *Config) Set(key, value string) error {
	switch key {
	case KeyMaxRetries:
		var n uint32
		if _, err := fmt.Sscanf(value, "%d", &n); err != nil {
			return fmt.Errorf("config: invalid max-retries %q: %w", value, err)
		}
		c.MaxRetries = n
	case KeyBackoffBase:
		var f float64
		if _, err := fmt.Sscanf(value, "%g", &f); err != nil {
			return fmt.Errorf("config: invalid backoff-base %q: %w", value, err)
		}
		c.BackoffBase = f
	case KeyBackoffMaxDelay:
		var f float64
		if _, err := fmt.Sscanf(value, "%g", &f); err != nil {
			return fmt.Errorf("config: invalid backoff-max-delay %q: %w", value, err)
		}
		c.BackoffMaxDelay = f
	default:
		return fmt.Errorf("config: unknown key %q", key)
	}
	return c.Validate()
}
