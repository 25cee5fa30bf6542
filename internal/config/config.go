// Package config loads the server configuration from YAML with environment
// overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all server configuration.
type Config struct {
	SSH       SSHConfig    `yaml:"ssh"`
	HTTP      HTTPConfig   `yaml:"http"`
	Store     StoreConfig  `yaml:"store"`
	Assets    AssetsConfig `yaml:"assets"`
	Skin      SkinConfig   `yaml:"skin"`
	Mojang    MojangConfig `yaml:"mojang"`
	LogLevel  string       `yaml:"log_level"`
	LogFormat string       `yaml:"log_format"`
}

// SSHConfig controls the terminal listener.
type SSHConfig struct {
	Addr    string `yaml:"addr"`
	HostKey string `yaml:"host_key"`
}

// HTTPConfig controls the HTTP listener. An empty Addr disables it.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig locates the SQLite database.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// AssetsConfig locates static assets: the fallback skin, gallery images and
// the task list.
type AssetsConfig struct {
	Dir string `yaml:"dir"`
}

// SkinConfig controls character compositing.
type SkinConfig struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Fallback string        `yaml:"fallback"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
	Debounce time.Duration `yaml:"debounce"`
}

// MojangConfig points the identity resolver at the profile services.
type MojangConfig struct {
	APIBase     string        `yaml:"api_base"`
	SessionBase string        `yaml:"session_base"`
	Timeout     time.Duration `yaml:"timeout"`
}

func (c *Config) defaults() {
	if c.SSH.Addr == "" {
		c.SSH.Addr = ":2222"
	}
	if c.SSH.HostKey == "" {
		c.SSH.HostKey = "host_key"
	}
	if c.Store.Path == "" {
		c.Store.Path = "termfolio.db"
	}
	if c.Assets.Dir == "" {
		c.Assets.Dir = "assets"
	}
	if c.Skin.Width <= 0 {
		c.Skin.Width = 161
	}
	if c.Skin.Height <= 0 {
		c.Skin.Height = 323
	}
	if c.Skin.Fallback == "" {
		c.Skin.Fallback = "steve.png"
	}
	if c.Skin.CacheTTL <= 0 {
		c.Skin.CacheTTL = time.Hour
	}
	if c.Skin.Debounce <= 0 {
		c.Skin.Debounce = 300 * time.Millisecond
	}
	if c.Mojang.APIBase == "" {
		c.Mojang.APIBase = "https://api.mojang.com"
	}
	if c.Mojang.SessionBase == "" {
		c.Mojang.SessionBase = "https://sessionserver.mojang.com"
	}
	if c.Mojang.Timeout <= 0 {
		c.Mojang.Timeout = 5 * time.Second
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
}

// applyEnv overrides file values from the environment. DATA_DIR relocates
// relative store and host key paths.
func (c *Config) applyEnv(getenv func(string) string) {
	if port := getenv("PORT"); port != "" {
		c.SSH.Addr = ":" + port
	}
	if port := getenv("HTTP_PORT"); port != "" {
		c.HTTP.Addr = ":" + port
	}
	if lvl := getenv("LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	}
	if dir := getenv("DATA_DIR"); dir != "" {
		if !filepath.IsAbs(c.Store.Path) {
			c.Store.Path = filepath.Join(dir, c.Store.Path)
		}
		if !filepath.IsAbs(c.SSH.HostKey) {
			c.SSH.HostKey = filepath.Join(dir, c.SSH.HostKey)
		}
	}
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.defaults()
	return cfg
}

// LoadConfigFile reads a YAML config file. An empty path yields the defaults.
// Environment overrides are applied last.
func LoadConfigFile(path string) (*Config, error) {
	return load(path, os.Getenv)
}

func load(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.defaults()
	cfg.applyEnv(getenv)
	return cfg, nil
}
