// Package config loads, validates and persists tripexplorer configuration.
//
// Configuration is resolved in layers: built-in defaults, the YAML file at
// ConfigPath(), an optional overlay passed with --config, environment
// variables, and finally CLI flags applied by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults and limits.
const (
	DefaultSourceLocation = "data.json"
	DefaultSourceTimeout  = 10 * time.Second
	DefaultPageSize       = 6
	MinPageSize           = 1
	MaxPageSize           = 100
	DefaultDebounce       = 300 * time.Millisecond
	MaxDebounce           = 5 * time.Second
	DefaultMarkdownStyle  = "auto"
	DefaultCacheTTL       = 3600
	MinCacheTTL           = 60
	MaxCacheTTL           = 604800
	DefaultServerAddr     = ":8080"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"

	configFileName = "config.yaml"
	configDirName  = ".tripexplorer"
	configDirPerm  = 0700
	configFilePerm = 0600
)

// Environment variables that override file configuration.
const (
	EnvHome      = "TRIPEXPLORER_HOME"
	EnvConfig    = "TRIPEXPLORER_CONFIG"
	EnvSource    = "TRIPEXPLORER_SOURCE"
	EnvPageSize  = "TRIPEXPLORER_PAGE_SIZE"
	EnvLogLevel  = "TRIPEXPLORER_LOG_LEVEL"
	EnvLogFormat = "TRIPEXPLORER_LOG_FORMAT"
	EnvCacheTTL  = "TRIPEXPLORER_CACHE_TTL"
	EnvAddr      = "TRIPEXPLORER_ADDR"
)

// Config is the full tripexplorer configuration.
type Config struct {
	Source  SourceConfig  `yaml:"source"`
	UI      UIConfig      `yaml:"ui"`
	Cache   CacheConfig   `yaml:"cache"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`

	// loadErr records a problem reading the config file; New falls back to
	// defaults and `config validate` reports it.
	loadErr error
}

// SourceConfig locates the trip catalog.
type SourceConfig struct {
	// Location is a local path or an http(s) URL returning {"trips": [...]}.
	Location string        `yaml:"location"`
	Timeout  time.Duration `yaml:"timeout"`
}

// UIConfig tunes the interactive browser and list output.
type UIConfig struct {
	PageSize      int           `yaml:"page_size"`
	Debounce      time.Duration `yaml:"debounce"`
	MarkdownStyle string        `yaml:"markdown_style"`
}

// CacheConfig controls caching of remote catalog payloads.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Directory  string `yaml:"directory"`
	TTLSeconds int    `yaml:"ttl_seconds"`
}

// ServerConfig configures `tripexplorer serve`.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// Default returns a Config populated with built-in defaults only.
func Default() *Config {
	cacheDir := ""
	if dir, err := GetConfigDir(); err == nil {
		cacheDir = filepath.Join(dir, "cache")
	}

	return &Config{
		Source: SourceConfig{
			Location: DefaultSourceLocation,
			Timeout:  DefaultSourceTimeout,
		},
		UI: UIConfig{
			PageSize:      DefaultPageSize,
			Debounce:      DefaultDebounce,
			MarkdownStyle: DefaultMarkdownStyle,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Directory:  cacheDir,
			TTLSeconds: DefaultCacheTTL,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns defaults overlaid with the config file and environment.
// A broken config file does not fail construction; see LoadError.
func New() *Config {
	cfg := Default()

	if path, err := ConfigPath(); err == nil {
		if loadErr := cfg.LoadFile(path); loadErr != nil && !errors.Is(loadErr, os.ErrNotExist) {
			cfg.loadErr = loadErr
		}
	}

	cfg.ApplyEnv(os.LookupEnv)
	return cfg
}

// LoadError returns the error encountered while reading the config file, if any.
func (c *Config) LoadError() error {
	return c.loadErr
}

// LoadFile decodes the YAML file at path on top of the current values.
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// ApplyEnv applies environment overrides. Unparsable numeric values are ignored.
func (c *Config) ApplyEnv(lookupEnv func(string) (string, bool)) {
	if v, ok := lookupEnv(EnvSource); ok && v != "" {
		c.Source.Location = v
	}
	if v, ok := lookupEnv(EnvPageSize); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.UI.PageSize = n
		}
	}
	if v, ok := lookupEnv(EnvLogLevel); ok && v != "" {
		c.Logging.Level = v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok && v != "" {
		c.Logging.Format = v
	}
	if v, ok := lookupEnv(EnvCacheTTL); ok {
		if n, err := strconv.Atoi(v); err == nil {
			c.Cache.TTLSeconds = n
		}
	}
	if v, ok := lookupEnv(EnvAddr); ok && v != "" {
		c.Server.Addr = v
	}
}

// Validate reports every invalid setting, joined into one error.
func (c *Config) Validate() error {
	var errs []error

	if c.Source.Location == "" {
		errs = append(errs, errors.New("source.location must not be empty"))
	}
	if c.Source.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("source.timeout must be positive, got %s", c.Source.Timeout))
	}
	if c.UI.PageSize < MinPageSize || c.UI.PageSize > MaxPageSize {
		errs = append(errs, fmt.Errorf("ui.page_size must be between %d and %d, got %d",
			MinPageSize, MaxPageSize, c.UI.PageSize))
	}
	if c.UI.Debounce < 0 || c.UI.Debounce > MaxDebounce {
		errs = append(errs, fmt.Errorf("ui.debounce must be between 0 and %s, got %s", MaxDebounce, c.UI.Debounce))
	}
	if c.Cache.Enabled {
		if c.Cache.Directory == "" {
			errs = append(errs, errors.New("cache.directory must be set when cache is enabled"))
		}
		if c.Cache.TTLSeconds < MinCacheTTL || c.Cache.TTLSeconds > MaxCacheTTL {
			errs = append(errs, fmt.Errorf("cache.ttl_seconds must be between %d and %d, got %d",
				MinCacheTTL, MaxCacheTTL, c.Cache.TTLSeconds))
		}
	}
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	for _, origin := range c.Server.AllowedOrigins {
		if origin != "*" && !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") {
			errs = append(errs, fmt.Errorf("server.allowed_origins entry %q must be \"*\" or start with http:// or https://", origin))
		}
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

// Save writes the configuration as YAML to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), configDirPerm); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(path, data, configFilePerm); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// GetConfigDir returns the tripexplorer configuration directory.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// ConfigPath returns the config file path, honouring TRIPEXPLORER_CONFIG.
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}
