// Package config loads the YAML configuration for the interactive
// comparison session.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProviderConfig selects and configures the embedding provider.
type ProviderConfig struct {
	Type      string `yaml:"type"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url,omitempty"`
}

// PreprocessConfig holds the text normalization flags.
type PreprocessConfig struct {
	Lowercase        bool `yaml:"lowercase"`
	StripPunctuation bool `yaml:"strip_punctuation"`
}

// KeywordsConfig configures the optional keyword comparison pass.
type KeywordsConfig struct {
	Enabled bool `yaml:"enabled"`
	// Type is "embedrank" or "anthropic".
	Type      string `yaml:"type"`
	TopK      int    `yaml:"top_k"`
	Model     string `yaml:"model,omitempty"`
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
}

// CacheConfig configures the optional embedding memo-cache.
type CacheConfig struct {
	// Type is "none", "lru", or "redis".
	Type     string `yaml:"type"`
	Capacity int    `yaml:"capacity,omitempty"`
	Addr     string `yaml:"addr,omitempty"`
	Database int    `yaml:"database,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Provider        ProviderConfig   `yaml:"provider"`
	Preprocess      PreprocessConfig `yaml:"preprocess"`
	Keywords        KeywordsConfig   `yaml:"keywords"`
	Cache           CacheConfig      `yaml:"cache"`
	Metric          string           `yaml:"metric"`
	MatchThreshold  float64          `yaml:"match_threshold"`
	HistoryCapacity int              `yaml:"history_capacity"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./simlab.yaml first, then ~/.config/simlab/config.yaml.
// If neither exists, it writes defaults to ~/.config/simlab/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "simlab.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "simlab", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Provider:        ProviderConfig{Type: "openai", Model: "text-embedding-3-small", APIKeyEnv: "OPENAI_API_KEY"},
		Preprocess:      PreprocessConfig{Lowercase: true},
		Keywords:        KeywordsConfig{Type: "embedrank", TopK: 8},
		Cache:           CacheConfig{Type: "lru", Capacity: 512},
		Metric:          "cosine",
		MatchThreshold:  0.8,
		HistoryCapacity: 50,
	}
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Provider.Type == "" {
		cfg.Provider.Type = "openai"
	}
	if cfg.Provider.APIKeyEnv == "" {
		switch cfg.Provider.Type {
		case "gemini":
			cfg.Provider.APIKeyEnv = "GEMINI_API_KEY"
		default:
			cfg.Provider.APIKeyEnv = "OPENAI_API_KEY"
		}
	}
	if cfg.Keywords.Type == "" {
		cfg.Keywords.Type = "embedrank"
	}
	if cfg.Keywords.TopK == 0 {
		cfg.Keywords.TopK = 8
	}
	if cfg.Keywords.Type == "anthropic" && cfg.Keywords.APIKeyEnv == "" {
		cfg.Keywords.APIKeyEnv = "ANTHROPIC_API_KEY"
	}
	if cfg.Cache.Type == "" {
		cfg.Cache.Type = "none"
	}
	if cfg.Cache.Type == "lru" && cfg.Cache.Capacity == 0 {
		cfg.Cache.Capacity = 512
	}
	if cfg.Metric == "" {
		cfg.Metric = "cosine"
	}
	if cfg.MatchThreshold == 0 {
		cfg.MatchThreshold = 0.8
	}
	if cfg.HistoryCapacity == 0 {
		cfg.HistoryCapacity = 50
	}
}
