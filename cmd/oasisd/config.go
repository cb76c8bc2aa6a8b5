package main

import (
	"fmt"

	"github.com/kbukum/oasisdoc/config"
	"github.com/kbukum/oasisdoc/llm"
	"github.com/kbukum/oasisdoc/oasis"
	"github.com/kbukum/oasisdoc/observability"
	"github.com/kbukum/oasisdoc/server"
	"github.com/kbukum/oasisdoc/transcription/whisper"
	"github.com/kbukum/oasisdoc/version"
)

const serviceName = "oasisd"

// Config is the full oasisd configuration.
type Config struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	Server        server.Config        `yaml:"server" mapstructure:"server"`
	LLM           llm.Config           `yaml:"llm" mapstructure:"llm"`
	Transcription whisper.Config       `yaml:"transcription" mapstructure:"transcription"`
	Extraction    oasis.Config `yaml:"extraction" mapstructure:"extraction"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
}

// envKeys are registered as defaults so their environment variables
// (LLM_API_KEY, SERVER_PORT, ...) apply even when config.yml omits them.
var envKeys = map[string]any{
	"name":                            serviceName,
	"environment":                     "",
	"logging.level":                   "",
	"logging.format":                  "",
	"server.port":                     0,
	"llm.dialect":                     "",
	"llm.base_url":                    "",
	"llm.model":                       "",
	"llm.api_key":                     "",
	"transcription.url":               "",
	"transcription.model":             "",
	"extraction.max_tokens":           0,
	"extraction.timeout":              0,
	"extraction.max_concurrent_calls": 0,
	"observability.enabled":           false,
}

// ApplyDefaults fills every section.
func (c *Config) ApplyDefaults() {
	c.ServiceConfig.ApplyDefaults()
	if c.Version == "" {
		c.Version = version.GetShortVersion()
	}
	c.Server.ApplyDefaults()
	c.LLM.ApplyDefaults()
	c.Transcription.ApplyDefaults()
	c.Extraction.ApplyDefaults()
	if c.Observability.ServiceName == "" {
		c.Observability.ServiceName = c.Name
	}
	if c.Observability.ServiceVersion == "" {
		c.Observability.ServiceVersion = c.Version
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Environment
	}
	c.Observability.ApplyDefaults()
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Transcription.Validate(); err != nil {
		return err
	}
	if err := c.Extraction.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// loadConfig reads config.yml, the .env file and the environment. Empty
// paths fall back to the loader's search list.
func loadConfig(configFile, envFile string) (*Config, error) {
	opts := []config.LoaderOption{config.WithDefaults(envKeys)}
	if configFile != "" {
		opts = append(opts, config.WithConfigFile(configFile))
	}
	if envFile != "" {
		opts = append(opts, config.WithEnvFile(envFile))
	}

	var cfg Config
	if err := config.LoadConfig(serviceName, &cfg, opts...); err != nil {
		return nil, err
	}
	return &cfg, nil
}
