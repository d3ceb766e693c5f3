package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/JonnyWalker81/babytracker/backend/internal/insights"
)

// Record sources
const (
	SourceSupabase = "supabase"
	SourceSnapshot = "snapshot"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig        `mapstructure:"server"`
	Supabase SupabaseConfig      `mapstructure:"supabase"`
	Snapshot SnapshotConfig      `mapstructure:"snapshot"`
	Log      LogConfig           `mapstructure:"log"`
	Insights insights.Thresholds `mapstructure:"insights"`
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Env            string   `mapstructure:"env"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SupabaseConfig holds Supabase-specific configuration
type SupabaseConfig struct {
	URL        string `mapstructure:"url"`
	ServiceKey string `mapstructure:"service_key"`
}

// SnapshotConfig lists record snapshot files served instead of Supabase
type SnapshotConfig struct {
	Paths []string `mapstructure:"paths"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads and validates the configuration
func Load(configFile string) (*Config, error) {
	config, err := Read(configFile)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Read reads configuration from an optional .env file, environment
// variables and a config file without validating it. An empty configFile
// searches ./config.yaml and ./config/config.yaml.
func Read(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	// Read from environment variables
	v.SetEnvPrefix("BABYINSIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Also bind to non-prefixed environment variables shared with the tracker app
	_ = v.BindEnv("server.port", "BABYINSIGHTS_SERVER_PORT", "PORT")
	_ = v.BindEnv("supabase.url", "BABYINSIGHTS_SUPABASE_URL", "SUPABASE_URL")
	_ = v.BindEnv("supabase.service_key", "BABYINSIGHTS_SUPABASE_SERVICE_KEY", "SUPABASE_SERVICE_KEY")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")

		// It's okay if config file doesn't exist
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("supabase.url", "")
	v.SetDefault("supabase.service_key", "")
	v.SetDefault("snapshot.paths", []string{})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Registering every threshold key lets AutomaticEnv override it
	t := insights.DefaultThresholds()
	v.SetDefault("insights.min_feedings", t.MinFeedings)
	v.SetDefault("insights.min_sleep_sessions", t.MinSleepSessions)
	v.SetDefault("insights.min_diaper_changes", t.MinDiaperChanges)
	v.SetDefault("insights.min_growth_points", t.MinGrowthPoints)
	v.SetDefault("insights.min_trailing_growth", t.MinTrailingGrowth)
	v.SetDefault("insights.min_cluster_sessions", t.MinClusterSessions)
	v.SetDefault("insights.min_shift_records", t.MinShiftRecords)
	v.SetDefault("insights.default_age_months", t.DefaultAgeMonths)
}

// Source reports which record repository the configuration selects.
// Snapshot files take precedence over Supabase.
func (c *Config) Source() string {
	if len(c.Snapshot.Paths) > 0 {
		return SourceSnapshot
	}
	return SourceSupabase
}

// Production reports whether the server runs in the production environment
func (c *Config) Production() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present
func (c *Config) Validate() error {
	if c.Source() == SourceSupabase {
		if c.Supabase.URL == "" {
			return fmt.Errorf("SUPABASE_URL is required when no snapshot paths are configured")
		}
		if c.Supabase.ServiceKey == "" {
			return fmt.Errorf("SUPABASE_SERVICE_KEY is required when no snapshot paths are configured")
		}
	}
	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text, got %q", c.Log.Format)
	}
	return nil
}
