package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

var (
	once    sync.Once
	initErr error
)

// Init initializes the configuration system
// This should be called once at application startup
func Init() error {
	once.Do(func() {
		// Set default values
		setDefaults()

		// Set up environment variable reading for overrides
		viper.SetEnvPrefix("VOICEBANK")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		// Load config from fixed location (cleaned for safety)
		configPath := filepath.Clean("./config/settings.yaml")
		viper.SetConfigFile(configPath)

		// Try to read the config file
		if err := viper.ReadInConfig(); err != nil {
			// If the config file doesn't exist, just use defaults and env vars
			if !os.IsNotExist(err) {
				initErr = fmt.Errorf("error reading config file %s: %w", configPath, err)
				return
			}
		}

		// Validate the configuration
		if err := validate(); err != nil {
			initErr = fmt.Errorf("invalid configuration: %w", err)
		}
	})

	return initErr
}

// GetConfig returns the current configuration as a struct
// Init() must be called before using this
func GetConfig() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &config, nil
}

// Get returns a config value by key using Viper directly
func Get(key string) any {
	return viper.Get(key)
}

// GetString returns a string config value
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetBool returns a bool config value
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetDuration returns a time.Duration config value
func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// validate validates the configuration using Viper values
func validate() error {
	port := viper.GetInt("server.port")
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port: %d", port)
	}

	if viper.GetString("database.path") == "" {
		fmt.Println("Warning: No database path configured")
	}

	// Auto-correct capture timings back to the product defaults
	if viper.GetInt("recording.countdown_seconds") <= 0 {
		viper.Set("recording.countdown_seconds", 3)
	}
	if viper.GetInt("recording.window_seconds") <= 0 {
		viper.Set("recording.window_seconds", 3)
	}
	if viper.GetInt("library.page_limit") <= 0 {
		viper.Set("library.page_limit", 1000)
	}

	return nil
}

// Validate validates a Config struct (for testing)
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Recording.CountdownSeconds <= 0 {
		c.Recording.CountdownSeconds = 3
	}
	if c.Recording.WindowSeconds <= 0 {
		c.Recording.WindowSeconds = 3
	}
	if c.Library.PageLimit <= 0 {
		c.Library.PageLimit = 1000
	}

	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Environment defaults
	viper.SetDefault("environment", "development")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.shutdown_timeout", 10*time.Second)
	viper.SetDefault("server.max_header_bytes", 1048576)

	// Database defaults
	viper.SetDefault("database.path", "./data/voicebank.db")
	viper.SetDefault("database.verbose", false)

	// Storage defaults
	viper.SetDefault("storage.audio_dir", "./data/audio")
	viper.SetDefault("storage.max_file_size", 10485760)

	// Recording defaults. Countdown and window both run three seconds,
	// matching the recording UI this service was built for.
	viper.SetDefault("recording.countdown_seconds", 3)
	viper.SetDefault("recording.window_seconds", 3)
	viper.SetDefault("recording.sample_rate", 44100)
	viper.SetDefault("recording.channels", 1)
	viper.SetDefault("recording.frames_per_buffer", 1024)

	// Library client defaults. Uploads get a generous timeout because the
	// server may post-process audio before answering.
	viper.SetDefault("library.base_url", "http://localhost:8080/api/v1")
	viper.SetDefault("library.user_id", "")
	viper.SetDefault("library.list_timeout", 10*time.Second)
	viper.SetDefault("library.upload_timeout", 30*time.Second)
	viper.SetDefault("library.sync_timeout", 30*time.Second)
	viper.SetDefault("library.page_limit", 1000)

	// Speech defaults. Assembled utterances are cached so repeated
	// playback of the same text does not re-read every word file.
	viper.SetDefault("speech.cache_max_bytes", 32*1024*1024)
	viper.SetDefault("speech.cache_ttl", 30*time.Minute)

	// Security defaults
	viper.SetDefault("security.enable_cors", true)
	viper.SetDefault("security.cors_origins", []string{"*"})
	viper.SetDefault("security.enable_recovery", true)
}
