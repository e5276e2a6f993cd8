// Package config handles the global refconv configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in
// ~/.config/refconv/config.yml.
type GlobalConfig struct {
	// DefaultTo is the target format used when --to is omitted.
	DefaultTo string `yaml:"default_to,omitempty"`
	// Indent is the indentation unit for JSON output.
	Indent string `yaml:"indent,omitempty"`
	// Sort orders generated entries by id.
	Sort bool `yaml:"sort,omitempty"`
	// LibraryPath locates the SQLite library database.
	LibraryPath string `yaml:"library_path,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "refconv"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// DefaultLibraryFile is the library database name under the config dir.
	DefaultLibraryFile = "library.db"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/refconv/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.LibraryPath != "" {
		cfg.LibraryPath = ExpandTilde(cfg.LibraryPath)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// LibraryPath returns the library database path: the REFCONV_LIBRARY
// environment variable, the configured path, or the default location
// next to the config file.
func LibraryPath() string {
	if p := os.Getenv("REFCONV_LIBRARY"); p != "" {
		return ExpandTilde(p)
	}
	cfg, _ := LoadGlobalConfig()
	if cfg != nil && cfg.LibraryPath != "" {
		return cfg.LibraryPath
	}
	if base := GlobalConfigPath(); base != "" {
		return filepath.Join(filepath.Dir(base), DefaultLibraryFile)
	}
	return DefaultLibraryFile
}

// ExpandTilde expands a leading ~ to the user's home directory.
func ExpandTilde(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
