// Package config loads service configuration from a config.yml file, an
// optional .env file and the process environment using Viper.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("oasisd", &cfg,
//	    config.WithDefaults(map[string]any{"llm.api_key": ""}),
//	)
//
// Nested keys map to environment variables by upper-casing and replacing
// dots with underscores (llm.api_key -> LLM_API_KEY).
package config
