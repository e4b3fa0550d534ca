package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Server configuration
	Server ServerConfig `mapstructure:"server"`

	// Source configuration (where snapshots come from)
	Source SourceConfig `mapstructure:"source"`

	// Store configuration (payload result cache)
	Store StoreConfig `mapstructure:"store"`

	// Analysis configuration
	Analysis AnalysisConfig `mapstructure:"analysis"`

	// Narrator configuration (optional LLM summaries)
	Narrator NarratorConfig `mapstructure:"narrator"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// CircuitBreaker configuration
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// SourceConfig holds snapshot source configuration
type SourceConfig struct {
	Driver string `mapstructure:"driver"` // file, neo4j

	// File source
	Path string `mapstructure:"path"`

	// Neo4j source
	URI      string `mapstructure:"uri"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

// StoreConfig holds payload cache configuration
type StoreConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Path     string `mapstructure:"path"`
	InMemory bool   `mapstructure:"in_memory"`
	TTL      int    `mapstructure:"ttl"` // in seconds, 0 keeps forever
}

// AnalysisConfig holds pipeline configuration
type AnalysisConfig struct {
	Timeout int `mapstructure:"timeout"` // in seconds, 0 unbounded
}

// NarratorConfig holds the optional LLM summary configuration
type NarratorConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	APIKey      string  `mapstructure:"api_key"`
	BaseURL     string  `mapstructure:"base_url"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
}

// TelemetryConfig holds telemetry configuration
type TelemetryConfig struct {
	ParquetPath string `mapstructure:"parquet_path"`
}

// CircuitBreakerConfig holds configuration for circuit breaking around
// the snapshot source
type CircuitBreakerConfig struct {
	Enabled          bool    `mapstructure:"enabled"`
	MaxRequests      uint32  `mapstructure:"max_requests"`
	Interval         int     `mapstructure:"interval"` // in seconds
	Timeout          int     `mapstructure:"timeout"`  // in seconds
	ReadyToTripRatio float64 `mapstructure:"ready_to_trip_ratio"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "debug")

	// Source defaults
	viper.SetDefault("source.driver", "file")
	viper.SetDefault("source.path", "./snapshot.json")
	viper.SetDefault("source.database", "neo4j")

	// Store defaults
	viper.SetDefault("store.enabled", true)
	viper.SetDefault("store.in_memory", false)
	viper.SetDefault("store.ttl", 3600)

	// Analysis defaults
	viper.SetDefault("analysis.timeout", 60)

	// Narrator defaults
	viper.SetDefault("narrator.enabled", false)
	viper.SetDefault("narrator.model", "gpt-4o-mini")
	viper.SetDefault("narrator.temperature", 0.3)

	// Circuit breaker defaults
	viper.SetDefault("circuit_breaker.enabled", true)
	viper.SetDefault("circuit_breaker.max_requests", 3)
	viper.SetDefault("circuit_breaker.interval", 60)
	viper.SetDefault("circuit_breaker.timeout", 30)
	viper.SetDefault("circuit_breaker.ready_to_trip_ratio", 0.6)

	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("store.path", fmt.Sprintf("%s/.refgraph/store", home))
		viper.SetDefault("telemetry.parquet_path", fmt.Sprintf("%s/.refgraph/telemetry", home))
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	// Narrator credentials
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.Narrator.APIKey = apiKey
	}

	// Neo4j source credentials
	if uri := os.Getenv("NEO4J_URI"); uri != "" {
		config.Source.URI = uri
	}
	if user := os.Getenv("NEO4J_USER"); user != "" {
		config.Source.Username = user
	}
	if pass := os.Getenv("NEO4J_PASSWORD"); pass != "" {
		config.Source.Password = pass
	}

	// Generic source settings
	if driver := os.Getenv("SOURCE_DRIVER"); driver != "" {
		config.Source.Driver = driver
	}
	if path := os.Getenv("SNAPSHOT_PATH"); path != "" {
		config.Source.Path = path
	}

	// Server settings
	if host := os.Getenv("SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		viper.Set("server.port", port)
	}

	// Store settings
	if path := os.Getenv("STORE_PATH"); path != "" {
		config.Store.Path = path
	}

	// Telemetry settings
	if path := os.Getenv("TELEMETRY_PARQUET_PATH"); path != "" {
		config.Telemetry.ParquetPath = path
	}
}
