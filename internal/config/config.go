package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yaml"

type Config struct {
	Database     DatabaseConfig     `yaml:"database"`
	Inbounds     InboundsConfig     `yaml:"inbounds"`
	Log          LogConfig          `yaml:"log"`
	Subscription SubscriptionConfig `yaml:"subscription"`
	Export       ExportConfig       `yaml:"export"`
	Publishers   []PublisherConfig  `yaml:"publishers"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// InboundsConfig holds the local listeners written into every imported configuration.
// An empty value keeps whatever the link decoder produced.
type InboundsConfig struct {
	Socks string `yaml:"socks"`
	HTTP  string `yaml:"http"`
}

// LogConfig holds the engine log paths written into imported Xray configurations.
type LogConfig struct {
	Access string `yaml:"access"`
	Error  string `yaml:"error"`
}

type SubscriptionConfig struct {
	Timeout   time.Duration `yaml:"timeout"`
	Proxy     string        `yaml:"proxy"` // socks5://host:port or http://host:port
	UserAgent string        `yaml:"user_agent"`
}

type ExportConfig struct {
	Base64 bool `yaml:"base64"`
}

// PublisherConfig names one publish target. Families restricts which stored
// configurations it receives; empty means all of them.
type PublisherConfig struct {
	Name     string                 `yaml:"name"`
	Type     string                 `yaml:"type"`
	Families []string               `yaml:"families"`
	Params   map[string]interface{} `yaml:"params"`
}

func defaults() Config {
	var cfg Config
	cfg.Database.Path = "proxytray.db"
	cfg.Inbounds.Socks = "127.0.0.1:10808"
	cfg.Inbounds.HTTP = "127.0.0.1:10809"
	cfg.Subscription.Timeout = 30 * time.Second
	cfg.Subscription.UserAgent = "proxytray"
	return cfg
}

// Load reads path over the built-in defaults. When path is empty the default
// location is used, and a missing file there is not an error.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config yaml: %w", err)
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "proxytray.db"
	}
	if cfg.Subscription.Timeout <= 0 {
		cfg.Subscription.Timeout = 30 * time.Second
	}

	return &cfg, nil
}

func (c *Config) FilterPublishers(names []string) {
	if len(names) == 0 {
		return
	}
	whitelist := make(map[string]bool)
	for _, n := range names {
		whitelist[n] = true
	}
	var filtered []PublisherConfig
	for _, item := range c.Publishers {
		if whitelist[item.Name] {
			filtered = append(filtered, item)
		}
	}
	c.Publishers = filtered
}
