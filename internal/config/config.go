package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	// Set defaults
	config := GetDefaults()

	// Configure viper
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/notesentry/")
	viper.AddConfigPath("$HOME/.notesentry/")

	// Environment variable overrides
	viper.SetEnvPrefix("NOTESENTRY")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Use specific config file if provided
	if configPath != "" {
		viper.SetConfigFile(configPath)
	}

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found is not an error - we'll use defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Unmarshal into config struct
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadDictionary reads a standalone JSON dictionary document that augments
// the built-in term lists, the same shape as the scrubber section of the
// main configuration. A missing path returns an empty override set.
func LoadDictionary(path string) (*ScrubberConfig, error) {
	overrides := &ScrubberConfig{}
	if path == "" {
		return overrides, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read dictionary file: %w", err)
	}
	if err := v.Unmarshal(overrides); err != nil {
		return nil, fmt.Errorf("failed to parse dictionary file: %w", err)
	}

	if err := validateScrubber(overrides); err != nil {
		return nil, fmt.Errorf("invalid dictionary file: %w", err)
	}

	return overrides, nil
}

// validateConfig validates the loaded configuration
func validateConfig(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}

	if config.Logging.Level != "debug" && config.Logging.Level != "info" && config.Logging.Level != "warn" && config.Logging.Level != "error" {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", config.Logging.Level)
	}

	if config.Logging.Format != "json" && config.Logging.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", config.Logging.Format)
	}

	if config.Server.RateLimit.Enabled && config.Server.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("invalid rate limit: %f requests per second", config.Server.RateLimit.RequestsPerSecond)
	}

	return validateScrubber(&config.Scrubber)
}

// validateScrubber checks the MRN length overrides. Zero means "use the
// default", so only explicit values are range-checked here; the engine
// validates the resolved range again at construction.
func validateScrubber(sc *ScrubberConfig) error {
	if sc.MRNMinLength < 0 || sc.MRNMaxLength < 0 {
		return fmt.Errorf("MRN length overrides must be positive")
	}
	if sc.MRNMinLength > 0 && sc.MRNMaxLength > 0 && sc.MRNMinLength > sc.MRNMaxLength {
		return fmt.Errorf("invalid MRN length range: %d-%d", sc.MRNMinLength, sc.MRNMaxLength)
	}
	return nil
}

// Watch starts watching the configuration file for changes
func Watch(config *Config, callback func(*Config)) error {
	viper.WatchConfig()
	viper.OnConfigChange(func(e fsnotify.Event) {
		newConfig := GetDefaults()
		if err := viper.Unmarshal(newConfig); err != nil {
			// Log error but don't crash
			return
		}

		if err := validateConfig(newConfig); err != nil {
			// Log error but don't crash
			return
		}

		callback(newConfig)
	})

	return nil
}
