package llm

import (
	"fmt"
	"os"
	"time"
)

// Defaults for the completion endpoint.
const (
	DefaultDialect   = "openai"
	DefaultBaseURL   = "https://api.openai.com/v1"
	DefaultModel     = "gpt-4o"
	DefaultMaxTokens = 500
	DefaultTimeout   = 120 * time.Second

	// APIKeyEnv is consulted when no api key is configured.
	APIKeyEnv = "OPENAI_API_KEY"
)

// Config holds configuration for creating an LLM adapter.
// The Dialect field selects the provider mapping.
type Config struct {
	// Name identifies this adapter in logs and metrics (e.g. "openai-llm").
	Name string `yaml:"name" mapstructure:"name"`

	// Dialect must match a dialect registered via RegisterDialect.
	Dialect string `yaml:"dialect" mapstructure:"dialect"`

	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`

	// Temperature is the default sampling temperature. 0 leaves it to the provider.
	Temperature float64 `yaml:"temperature" mapstructure:"temperature"`

	// MaxTokens bounds the response length.
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Timeout for HTTP requests.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`

	// Headers are additional HTTP headers sent with every request.
	Headers map[string]string `yaml:"headers" mapstructure:"headers"`
}

// ApplyDefaults sets default values for unset config fields.
func (c *Config) ApplyDefaults() {
	if c.Dialect == "" {
		c.Dialect = DefaultDialect
	}
	if c.BaseURL == "" && c.Dialect == DefaultDialect {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(APIKeyEnv)
	}
	if c.Name == "" {
		c.Name = c.Dialect + "-llm"
	}
}

// Validate checks the configuration. It does not require an api key so the
// service can start against a local endpoint.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("llm.base_url is required")
	}
	if c.MaxTokens < 0 {
		return fmt.Errorf("llm.max_tokens must be positive (got: %d)", c.MaxTokens)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be within [0, 2] (got: %v)", c.Temperature)
	}
	return nil
}
