package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "ris2bib"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
	// PathEnv names an explicit config file, taking precedence over the
	// XDG location.
	PathEnv = "RIS2BIB_CONFIG"
)

// globalConfigCache caches the loaded global config.
var (
	globalConfigCache     *Config
	globalConfigCachePath string
)

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/ris2bib/config.yml.
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

// ResolvePath picks the config file to use: override if set, then
// $RIS2BIB_CONFIG, then the global path. explicit reports whether the file
// was named by the user, in which case it must exist.
func ResolvePath(override string) (path string, explicit bool) {
	if override != "" {
		return ExpandPath(override), true
	}
	if env := os.Getenv(PathEnv); env != "" {
		return ExpandPath(env), true
	}
	return GlobalConfigPath(), false
}

// Load reads and validates the config at path. A missing file yields an
// empty config unless required is set.
func Load(path string, required bool) (*Config, error) {
	if path == "" {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &cfg, nil
}

// LoadGlobalConfig loads the config chosen by ResolvePath(override). The
// result is cached per resolved path for the life of the process.
func LoadGlobalConfig(override string) (*Config, error) {
	path, explicit := ResolvePath(override)
	if globalConfigCache != nil && globalConfigCachePath == path {
		return globalConfigCache, nil
	}

	cfg, err := Load(path, explicit)
	if err != nil {
		return nil, err
	}

	globalConfigCache = cfg
	globalConfigCachePath = path
	return cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
	globalConfigCachePath = ""
}

// Marshal renders cfg as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	return data, nil
}

// HelpfulConfigMessage returns a hint for creating the global config file.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No config file found; using built-in mappings.

Tip: Create %s to extend them:
  mkdir -p %s
  cat > %s <<'YAML'
  ris_types:
    DATA: misc
  ris_tags:
    M3: howpublished
  stopwords: [towards]
  YAML`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
