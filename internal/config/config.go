// Package config handles configuration loading for newspulse.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Speech  SpeechConfig  `mapstructure:"speech"  yaml:"speech"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// FetcherConfig holds news source settings.
type FetcherConfig struct {
	Source      string `mapstructure:"source"        yaml:"source"` // "bing", "rss", or "both"
	BingBaseURL string `mapstructure:"bing_base_url" yaml:"bing_base_url"`
	RSSBaseURL  string `mapstructure:"rss_base_url"  yaml:"rss_base_url"`
	TimeoutSec  int    `mapstructure:"timeout_sec"   yaml:"timeout_sec"`
	MaxArticles int    `mapstructure:"max_articles"  yaml:"max_articles"`
}

// SpeechConfig holds translation and text-to-speech settings.
type SpeechConfig struct {
	TargetLanguage   string `mapstructure:"target_language"    yaml:"target_language"`
	OutputDir        string `mapstructure:"output_dir"         yaml:"output_dir"`
	Backend          string `mapstructure:"backend"            yaml:"backend"` // "google" or "openai"
	OpenAIKey        string `mapstructure:"openai_key"         yaml:"openai_key"`
	TranslateBaseURL string `mapstructure:"translate_base_url" yaml:"translate_base_url"`
	TTSBaseURL       string `mapstructure:"tts_base_url"       yaml:"tts_base_url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.newspulse/config.yaml (home directory)
//  3. /etc/newspulse/config.yaml (system)
//
// Environment variables override config file values.
// Format: NEWSPULSE_<SECTION>_<KEY>, e.g., NEWSPULSE_API_PORT
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".newspulse"))
	v.AddConfigPath("/etc/newspulse")

	v.SetEnvPrefix("NEWSPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("NEWSPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 5000)
	v.SetDefault("api.cors_origins", []string{"*"})

	// Fetcher defaults
	v.SetDefault("fetcher.source", "bing")
	v.SetDefault("fetcher.bing_base_url", "")
	v.SetDefault("fetcher.rss_base_url", "")
	v.SetDefault("fetcher.timeout_sec", 10)
	v.SetDefault("fetcher.max_articles", 10)

	// Speech defaults
	v.SetDefault("speech.target_language", "hi")
	v.SetDefault("speech.output_dir", "audio")
	v.SetDefault("speech.backend", "google")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads sensitive keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if key := os.Getenv("NEWSPULSE_SPEECH_OPENAI_KEY"); key != "" {
		cfg.Speech.OpenAIKey = key
	}
	if cfg.Speech.OpenAIKey == "" {
		cfg.Speech.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
