package commands

import (
	"errors"

	"github.com/spf13/viper"
)

type Config struct {
	Dataset           string               `mapstructure:"dataset"`
	Task              string               `mapstructure:"task"`
	Labels            []string             `mapstructure:"labels"`
	Languages         []string             `mapstructure:"languages"`
	Limit             int                  `mapstructure:"limit"`
	Provider          string               `mapstructure:"provider"`
	OutputDir         string               `mapstructure:"output_dir"`
	Format            string               `mapstructure:"format"`
	Output            string               `mapstructure:"output"`
	BatchSize         int                  `mapstructure:"batch_size"`
	Workers           int                  `mapstructure:"workers"`
	Seed              int64                `mapstructure:"seed"`
	HighConfThreshold float64              `mapstructure:"high_conf_threshold"`
	RateLimitRPS      float64              `mapstructure:"rate_limit_rps"`
	RateLimitBurst    int                  `mapstructure:"rate_limit_burst"`
	Perturbations     []PerturbationConfig `mapstructure:"perturbations"`
	Model             ModelConfig          `mapstructure:"model"`
	Cache             CacheConfig          `mapstructure:"cache"`
	OpenAI            OpenAIConfig         `mapstructure:"openai"`
	Anthropic         AnthropicConfig      `mapstructure:"anthropic"`
	Gemini            GeminiConfig         `mapstructure:"gemini"`
	Ollama            OllamaConfig         `mapstructure:"ollama"`
}

type PerturbationConfig struct {
	Name   string    `mapstructure:"name"`
	Levels []float64 `mapstructure:"levels"`
}

type ModelConfig struct {
	Name         string `mapstructure:"name"`
	MockResponse string `mapstructure:"mock_response"`
}

type CacheConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Dir      string `mapstructure:"dir"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type OpenAIConfig struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	BackoffMillis  int    `mapstructure:"backoff_millis"`
}

type AnthropicConfig struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	BackoffMillis  int    `mapstructure:"backoff_millis"`
	MaxTokens      int    `mapstructure:"max_tokens"`
}

type GeminiConfig struct {
	Model          string `mapstructure:"model"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	BackoffMillis  int    `mapstructure:"backoff_millis"`
}

type OllamaConfig struct {
	Model          string `mapstructure:"model"`
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	BackoffMillis  int    `mapstructure:"backoff_millis"`
}

func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".robustgo")
		v.AddConfigPath(".")
	}

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
