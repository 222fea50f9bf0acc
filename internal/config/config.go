package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the sevamcp server configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	MCP     MCPConfig     `yaml:"mcp"`
	Catalog CatalogConfig `yaml:"catalog"`
	Search  SearchConfig  `yaml:"search"`
	Portal  PortalConfig  `yaml:"portal"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// BackendConfig holds the government-services backend connection settings.
type BackendConfig struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// MCPConfig holds the protocol transport settings.
type MCPConfig struct {
	Transport       string   `yaml:"transport"` // stdio, http (default: stdio)
	HTTPAddr        string   `yaml:"http_addr"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	APIKeys         []string `yaml:"api_keys"`
}

// CatalogConfig holds catalog cache settings.
type CatalogConfig struct {
	CacheDriver string      `yaml:"cache_driver"` // memory, redis (default: memory)
	CacheTTLSec int         `yaml:"cache_ttl_sec"`
	Redis       RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis connection settings for the catalog cache.
type RedisConfig struct {
	Addrs               []string `yaml:"addrs"`
	Username            string   `yaml:"username"`
	Password            string   `yaml:"password"`
	DB                  int      `yaml:"db"`
	ReadinessTimeoutSec int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	MinScore float64 `yaml:"min_score"`
}

// PortalConfig holds the citizen portal settings used for apply links.
type PortalConfig struct {
	ApplyBaseURL string `yaml:"apply_base_url"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.Backend.TimeoutSec <= 0 {
		c.Backend.TimeoutSec = 30
	}
	if c.MCP.Transport == "" {
		c.MCP.Transport = "stdio"
	}
	if c.MCP.ReadTimeoutSec <= 0 {
		c.MCP.ReadTimeoutSec = 30
	}
	if c.MCP.WriteTimeoutSec <= 0 {
		c.MCP.WriteTimeoutSec = 30
	}
	if c.MCP.ShutdownSec <= 0 {
		c.MCP.ShutdownSec = 10
	}
	if c.Catalog.CacheDriver == "" {
		c.Catalog.CacheDriver = "memory"
	}
	if c.Catalog.CacheTTLSec <= 0 {
		c.Catalog.CacheTTLSec = 3600
	}
	if c.Catalog.Redis.ReadinessTimeoutSec <= 0 {
		c.Catalog.Redis.ReadinessTimeoutSec = 10
	}
	if c.Search.MinScore <= 0 {
		c.Search.MinScore = 30
	}
	if c.Portal.ApplyBaseURL == "" {
		c.Portal.ApplyBaseURL = "https://eservices.uk.gov.in/user/services"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}

	switch c.MCP.Transport {
	case "stdio":
		// ok
	case "http":
		if c.MCP.HTTPAddr == "" {
			return fmt.Errorf("mcp.http_addr is required for http transport")
		}
	default:
		return fmt.Errorf("mcp.transport must be \"stdio\" or \"http\", got %q", c.MCP.Transport)
	}

	switch c.Catalog.CacheDriver {
	case "memory":
		// ok
	case "redis":
		if len(c.Catalog.Redis.Addrs) == 0 {
			return fmt.Errorf("catalog.redis.addrs is required for redis cache driver")
		}
	default:
		return fmt.Errorf("catalog.cache_driver must be \"memory\" or \"redis\", got %q", c.Catalog.CacheDriver)
	}

	if c.Search.MinScore > 100 {
		return fmt.Errorf("search.min_score must be at most 100, got %v", c.Search.MinScore)
	}

	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
