package oasis

import (
	"fmt"
	"time"
)

const (
	DefaultMaxTokens          = 500
	DefaultTimeout            = 60 * time.Second
	DefaultMaxConcurrentCalls = 4
)

// Config configures extraction runs.
type Config struct {
	// MaxTokens bounds each completion reply.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`
	// Timeout bounds each completion call.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
	// MaxConcurrentCalls caps in-flight completion calls across all requests.
	MaxConcurrentCalls int `yaml:"max_concurrent_calls" mapstructure:"max_concurrent_calls"`
	// PatientCues override the segmenter's default cue list.
	PatientCues []string `yaml:"patient_cues" mapstructure:"patient_cues"`
}

// ApplyDefaults fills zero values.
func (c *Config) ApplyDefaults() {
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxConcurrentCalls == 0 {
		c.MaxConcurrentCalls = DefaultMaxConcurrentCalls
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MaxTokens < 0 {
		return fmt.Errorf("extraction.max_tokens must be positive (got: %d)", c.MaxTokens)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("extraction.timeout must not be negative (got: %s)", c.Timeout)
	}
	if c.MaxConcurrentCalls < 0 {
		return fmt.Errorf("extraction.max_concurrent_calls must be positive (got: %d)", c.MaxConcurrentCalls)
	}
	return nil
}
