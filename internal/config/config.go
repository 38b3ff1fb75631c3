package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ConfigDir      string
	ConfigPath     string
	LogPath        string
	ListenAddr     string
	RequestTimeout time.Duration
	LogLevel       string
	OpenBrowser    bool
}

func Default() Config {
	configDir := filepath.Join(userConfigDir(), "hnpanel")
	return Config{
		ConfigDir:      configDir,
		ConfigPath:     filepath.Join(configDir, "config.yaml"),
		LogPath:        filepath.Join(configDir, "debug.log"),
		ListenAddr:     "127.0.0.1:8421",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "info",
		OpenBrowser:    true,
	}
}

// fileConfig is the YAML layout of the config file. Unset keys keep their
// defaults.
type fileConfig struct {
	ListenAddr     string `yaml:"listen_addr"`
	RequestTimeout string `yaml:"request_timeout"`
	LogLevel       string `yaml:"log_level"`
	LogPath        string `yaml:"log_path"`
	OpenBrowser    *bool  `yaml:"open_browser"`
}

// Load returns the defaults overlaid with the YAML file at path. An empty
// path means the default location. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		cfg.ConfigPath = path
	}

	data, err := os.ReadFile(cfg.ConfigPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(err, "reading config file")
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, errors.Wrapf(err, "parsing config file %s", cfg.ConfigPath)
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil || d <= 0 {
			return cfg, errors.Errorf("invalid request_timeout %q: must be a positive duration (e.g., 5s)", fc.RequestTimeout)
		}
		cfg.RequestTimeout = d
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogPath != "" {
		cfg.LogPath = fc.LogPath
	}
	if fc.OpenBrowser != nil {
		cfg.OpenBrowser = *fc.OpenBrowser
	}
	return cfg, nil
}

func userConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
