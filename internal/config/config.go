package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config represents application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig locates the backend API
type ServerConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Timeout string `mapstructure:"timeout"`
}

// AuthConfig describes where the bearer credential comes from. Exactly
// the resolved value is handed to each mutating call; nothing reads it
// ambiently.
type AuthConfig struct {
	Token         string `mapstructure:"token"`
	TokenEnv      string `mapstructure:"token_env"`
	TokenCommand  string `mapstructure:"token_command"`
	TokenLifetime string `mapstructure:"token_lifetime"`
}

// UIConfig carries calendar view defaults
type UIConfig struct {
	WindowSize int `mapstructure:"window_size"` // months shown in month view: 1, 3 or 6
}

// LogConfig configures the zap logger
type LogConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.master-calendar")
		v.AddConfigPath("/etc/master-calendar")
	}

	v.SetDefault("auth.token_env", "MASTER_CALENDAR_TOKEN")
	v.SetDefault("ui.window_size", 3)

	// Read environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.BaseURL == "" {
		return fmt.Errorf("server.base_url is required")
	}

	switch c.UI.WindowSize {
	case 1, 3, 6:
	default:
		return fmt.Errorf("ui.window_size must be 1, 3 or 6, got %d", c.UI.WindowSize)
	}

	return nil
}

// GetTimeout returns the request timeout duration
func (c *ServerConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 30 * time.Second
	}
	duration, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return duration
}

// GetTokenLifetime returns how long a command-sourced token is cached
func (c *AuthConfig) GetTokenLifetime() time.Duration {
	if c.TokenLifetime == "" {
		return time.Hour
	}
	duration, err := time.ParseDuration(c.TokenLifetime)
	if err != nil {
		return time.Hour
	}
	return duration
}

// ExpandEnvVars expands environment variables in config strings
func (c *Config) ExpandEnvVars() {
	c.Server.BaseURL = os.ExpandEnv(c.Server.BaseURL)
	c.Auth.Token = os.ExpandEnv(c.Auth.Token)
}
