package oasis

import (
	"testing"
	"time"
)

func TestConfig_ApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()
	if cfg.MaxTokens != DefaultMaxTokens || cfg.Timeout != DefaultTimeout || cfg.MaxConcurrentCalls != DefaultMaxConcurrentCalls {
		t.Errorf("defaults = %+v", cfg)
	}

	cfg = Config{MaxTokens: 64, Timeout: time.Second, MaxConcurrentCalls: 1}
	cfg.ApplyDefaults()
	if cfg.MaxTokens != 64 || cfg.Timeout != time.Second || cfg.MaxConcurrentCalls != 1 {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{MaxTokens: 500, Timeout: time.Minute, MaxConcurrentCalls: 4}, false},
		{"zero values", Config{}, false},
		{"negative max tokens", Config{MaxTokens: -1}, true},
		{"negative timeout", Config{Timeout: -time.Second}, true},
		{"negative concurrency", Config{MaxConcurrentCalls: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
