// Package config loads runtime configuration from an optional YAML file
// and CRUISEDESK_-prefixed environment variables, env taking precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "CRUISEDESK"

type LLM struct {
	// Provider is the chat model provider: openai, anthropic or cohere.
	Provider    string  `mapstructure:"provider" validate:"required,oneof=openai anthropic cohere"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model" validate:"required"`
	Temperature float32 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	MaxTokens   int     `mapstructure:"max_tokens" validate:"gte=0"`
	MaxRetries  int     `mapstructure:"max_retries" validate:"gte=0"`
}

type Embedder struct {
	Provider string `mapstructure:"provider" validate:"required,oneof=openai cohere huggingface"`
	APIKey   string `mapstructure:"api_key"`
	BaseURL  string `mapstructure:"base_url"`
	Model    string `mapstructure:"model"`
}

type VectorDB struct {
	// Engine selects the vector backend: memory, chromem or milvus.
	Engine string `mapstructure:"engine" validate:"required,oneof=memory chromem milvus"`
	// Path is the chromem persistence directory; empty keeps it in memory.
	Path string `mapstructure:"path"`
	// Address is the milvus server address.
	Address    string `mapstructure:"address"`
	Collection string `mapstructure:"collection"`
	TopK       int    `mapstructure:"top_k" validate:"gte=0"`
}

type Data struct {
	// CruisesPath is the cruises JSONL dataset.
	CruisesPath string `mapstructure:"cruises_path"`
	// PricingPath is the pricing CSV dataset.
	PricingPath string `mapstructure:"pricing_path"`
	// DatabasePath is the SQLite file; empty uses an in-memory database.
	DatabasePath string `mapstructure:"database_path"`
}

type Prompts struct {
	// Dir overrides the embedded prompt files.
	Dir string `mapstructure:"dir"`
}

type Tracing struct {
	// Endpoint is the OTLP HTTP collector endpoint; empty disables export.
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
	Insecure    bool   `mapstructure:"insecure"`
}

type Log struct {
	Level       string `mapstructure:"level" validate:"omitempty,oneof=debug info warn error"`
	Development bool   `mapstructure:"development"`
}

type Config struct {
	LLM      LLM      `mapstructure:"llm"`
	Embedder Embedder `mapstructure:"embedder"`
	VectorDB VectorDB `mapstructure:"vectordb"`
	Data     Data     `mapstructure:"data"`
	Prompts  Prompts  `mapstructure:"prompts"`
	Tracing  Tracing  `mapstructure:"tracing"`
	Log      Log      `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("embedder.provider", "huggingface")
	v.SetDefault("vectordb.engine", "memory")
	v.SetDefault("vectordb.collection", "cruises")
	v.SetDefault("vectordb.top_k", 5)
	v.SetDefault("data.cruises_path", "data/cruises.jsonl")
	v.SetDefault("data.pricing_path", "data/pricing.csv")
	v.SetDefault("tracing.service_name", "cruisedesk")
	v.SetDefault("log.level", "info")
}

// Load reads configuration. A missing file is fine when path is empty;
// a named file that cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("cruisedesk")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("config: %w", err)
			}
		}
	}
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config: invalid: %w", err)
	}
	return cfg, nil
}
