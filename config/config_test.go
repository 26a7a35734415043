package config_test

import (
	"testing"

	"github.com/queuectl/queuectl/config"
)

func TestDefaults(t *testing.T) {
	cfg := config.Default()
	if cfg.MaxRetries != 3 {
		t.Fatalf("expected default max_retries=3, got %d", cfg.MaxRetries)
	}
	if cfg.BackoffBase != 2.0 {
		t.Fatalf("expected default backoff_base=2.0, got %v", cfg.BackoffBase)
	}
	if cfg.BackoffMaxDelay != 3600 {
		t.Fatalf("expected default backoff_max_delay=3600, got %v", cfg.BackoffMaxDelay)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestValidateRejectsBadBackoffBase(t *testing.T) {
	cfg := config.Default()
	cfg.BackoffBase = 1.0
	if err := cfg.Validate(); err == nil {
		t.Fatal("backoff_base of 1.0 must be rejected (must be > 1.0)")
	}
}

func TestValidateRejectsBadMaxDelay(t *testing.T) {
	cfg := config.Default()
	cfg.BackoffMaxDelay = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("backoff_max_delay of 0 must be rejected (must be >= 1)")
	}
}

func TestSetMaxRetries(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Set(config.KeyMaxRetries, "5"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.MaxRetries != 5 {
		t.Fatalf("expected max_retries=5, got %d", cfg.MaxRetries)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Set("bogus-key", "1"); err == nil {
		t.Fatal("expected an error for an unknown config key")
	}
}

func TestSetValidatesResult(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Set(config.KeyBackoffBase, "0.5"); err == nil {
		t.Fatal("Set must reject a value that fails Validate")
	}
}
