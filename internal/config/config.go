package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Reddit   RedditConfig   `mapstructure:"reddit"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Pipeline PipelineConfig `mapstructure:"pipeline"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

// StorageConfig selects the record store backend
type StorageConfig struct {
	DatabaseURL string `mapstructure:"database_url"`
	Path        string `mapstructure:"path"`
}

// RedditConfig holds source transport settings
type RedditConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	MockMode  bool   `mapstructure:"mock_mode"`
}

// LLMConfig holds the live-vs-substitute switch and model credentials
type LLMConfig struct {
	Live   bool   `mapstructure:"live"`
	Model  string `mapstructure:"model"`
	APIKey string `mapstructure:"api_key"`
}

// PipelineConfig holds worker pool and default batch settings
type PipelineConfig struct {
	Workers      int `mapstructure:"workers"`
	DefaultLimit int `mapstructure:"default_limit"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("storage.database_url", "")
	viper.SetDefault("storage.path", "./data/complain-finder.json")
	viper.SetDefault("reddit.base_url", "https://www.reddit.com")
	viper.SetDefault("reddit.user_agent", "complain-finder/1.0")
	viper.SetDefault("reddit.mock_mode", false)
	viper.SetDefault("llm.live", false)
	viper.SetDefault("llm.model", "gemini-2.5-flash")
	viper.SetDefault("pipeline.workers", 4)
	viper.SetDefault("pipeline.default_limit", 25)

	// Environment variable bindings
	viper.AutomaticEnv()
	viper.BindEnv("storage.database_url", "DATABASE_URL")
	viper.BindEnv("reddit.mock_mode", "REDDIT_MOCK_MODE")
	viper.BindEnv("llm.api_key", "GEMINI_API_KEY")
	viper.BindEnv("llm.live", "LLM_LIVE")
	viper.BindEnv("llm.model", "LLM_MODEL")

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		log.Println("No config file found, using defaults and environment variables")
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}
