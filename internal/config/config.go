package config

import (
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	DefaultAPIBaseURL = "http://localhost:8080"
	DefaultTimeLayout = "2006-01-02 15:04:05"
	DefaultRedisAddr  = "127.0.0.1:6379"

	EnvAPI        = "TASKDECK_API"
	EnvJournalDSN = "TASKDECK_JOURNAL_DSN"
	EnvRedis      = "TASKDECK_REDIS"
	EnvConfigFile = "TASKDECK_CONFIG"
)

type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	UI      UIConfig      `yaml:"ui"`
	Seen    SeenConfig    `yaml:"seen"`
	Journal JournalConfig `yaml:"journal"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// File receives the log while the terminal UI owns the screen.
	File string `yaml:"file"`
}

type UIConfig struct {
	TimeFormat   string `yaml:"time_format"`
	ToastSeconds int    `yaml:"toast_seconds"`
	Styles       Styles `yaml:"styles"`
}

type SeenConfig struct {
	Persistent bool   `yaml:"persistent"`
	RedisAddr  string `yaml:"redis_addr"`
}

type JournalConfig struct {
	// DSN of the MySQL journal, e.g. user:pass@tcp(host:3306)/taskdeck;
	// empty disables journaling. parseTime=True is added when missing.
	DSN string `yaml:"dsn"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{BaseURL: DefaultAPIBaseURL},
		Log: LogConfig{Level: "info", File: "taskdeck.log"},
		UI: UIConfig{
			TimeFormat:   DefaultTimeLayout,
			ToastSeconds: 3,
			Styles:       PresetStyles,
		},
		Seen: SeenConfig{RedisAddr: DefaultRedisAddr},
	}
}

// Load reads the yaml file at path over the defaults, then applies the
// environment. An empty path means defaults plus environment only.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPI); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvJournalDSN); v != "" {
		c.Journal.DSN = v
	}
	if v := os.Getenv(EnvRedis); v != "" {
		c.Seen.RedisAddr = v
		c.Seen.Persistent = true
	}
}

func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("config: api.base_url is empty")
	}
	if c.UI.ToastSeconds <= 0 {
		return fmt.Errorf("config: ui.toast_seconds must be positive, got %d", c.UI.ToastSeconds)
	}
	if c.UI.TimeFormat == "" {
		c.UI.TimeFormat = DefaultTimeLayout
	}
	if c.Seen.Persistent && c.Seen.RedisAddr == "" {
		return fmt.Errorf("config: seen.persistent needs seen.redis_addr")
	}
	return nil
}

func (c *Config) ToastDuration() time.Duration {
	return time.Duration(c.UI.ToastSeconds) * time.Second
}
