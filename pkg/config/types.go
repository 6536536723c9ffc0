package config

import "time"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Recording RecordingConfig `mapstructure:"recording"`
	Library   LibraryConfig   `mapstructure:"library"`
	Speech    SpeechConfig    `mapstructure:"speech"`
	Security  SecurityConfig  `mapstructure:"security"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxHeaderBytes  int           `mapstructure:"max_header_bytes"`
}

// DatabaseConfig contains database settings
type DatabaseConfig struct {
	Path    string `mapstructure:"path"`
	Verbose bool   `mapstructure:"verbose"`
}

// StorageConfig contains audio asset storage settings
type StorageConfig struct {
	AudioDir    string `mapstructure:"audio_dir"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// RecordingConfig contains local capture settings
type RecordingConfig struct {
	CountdownSeconds int     `mapstructure:"countdown_seconds"`
	WindowSeconds    int     `mapstructure:"window_seconds"`
	SampleRate       float64 `mapstructure:"sample_rate"`
	Channels         int     `mapstructure:"channels"`
	FramesPerBuffer  int     `mapstructure:"frames_per_buffer"`
}

// LibraryConfig contains remote vocabulary library client settings
type LibraryConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	UserID        string        `mapstructure:"user_id"`
	ListTimeout   time.Duration `mapstructure:"list_timeout"`
	UploadTimeout time.Duration `mapstructure:"upload_timeout"`
	SyncTimeout   time.Duration `mapstructure:"sync_timeout"`
	PageLimit     int           `mapstructure:"page_limit"`
}

// SpeechConfig contains utterance assembly settings
type SpeechConfig struct {
	CacheMaxBytes int64         `mapstructure:"cache_max_bytes"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

// SecurityConfig contains security settings
type SecurityConfig struct {
	EnableCORS     bool     `mapstructure:"enable_cors"`
	CORSOrigins    []string `mapstructure:"cors_origins"`
	EnableRecovery bool     `mapstructure:"enable_recovery"`
}
