package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultRemoteURL = "https://api.jsonbin.io/v3"
	DefaultModel     = "claude-sonnet-4-5"
)

type UserConfig struct {
	Name string `yaml:"name"`
}

// LoginConfig holds the credentials of the login gate. Both empty disables it.
type LoginConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type RemoteConfig struct {
	URL       string `yaml:"url"`
	BinID     string `yaml:"bin_id"`
	MasterKey string `yaml:"master_key"`
	Enabled   bool   `yaml:"enabled"`
}

type SyncConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type GeneratorConfig struct {
	APIKey    string `yaml:"api_key"`
	Model     string `yaml:"model"`
	MaxTokens int64  `yaml:"max_tokens"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File is the rotated log file. Empty logs to stdout.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

type Config struct {
	Language  string          `yaml:"language"`
	Theme     string          `yaml:"theme"`
	User      UserConfig      `yaml:"user"`
	Login     LoginConfig     `yaml:"login"`
	Remote    RemoteConfig    `yaml:"remote"`
	Sync      SyncConfig      `yaml:"sync"`
	Generator GeneratorConfig `yaml:"generator"`
	Log       LogConfig       `yaml:"log"`
}

func DefaultConfigPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "config.yml"
	}
	return filepath.Join(filepath.Dir(exe), "config.yml")
}

func DefaultLogPath() string {
	exe, err := os.Executable()
	if err != nil {
		return "studydesk.log"
	}
	return filepath.Join(filepath.Dir(exe), "studydesk.log")
}

func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

func Default() *Config {
	return &Config{
		Language: "en",
		Theme:    "dark",
		Remote:   RemoteConfig{URL: DefaultRemoteURL, Enabled: true},
		Sync:     SyncConfig{Debounce: 2 * time.Second},
		Generator: GeneratorConfig{
			Model:     DefaultModel,
			MaxTokens: 2048,
		},
		Log: LogConfig{
			Level:      "info",
			Format:     "json",
			File:       DefaultLogPath(),
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if cfg.Sync.Debounce <= 0 {
		cfg.Sync.Debounce = 2 * time.Second
	}
	if cfg.Log.File != "" && cfg.Log.File[0] == '~' {
		home, _ := os.UserHomeDir()
		cfg.Log.File = filepath.Join(home, cfg.Log.File[1:])
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"JSONBIN_API_KEY", &c.Remote.MasterKey},
		{"JSONBIN_BIN_ID", &c.Remote.BinID},
		{"JSONBIN_URL", &c.Remote.URL},
		{"APP_USERNAME", &c.Login.Username},
		{"APP_PASSWORD", &c.Login.Password},
		{"ANTHROPIC_API_KEY", &c.Generator.APIKey},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && v != "" {
			*o.dst = v
		}
	}
}

func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
