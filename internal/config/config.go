// Package config loads the service configuration from YAML files with
// environment-variable expansion, fills defaults, and validates.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/netfacet/atlasbridge/internal/domain/rule"
)

// Config holds the atlasbridge configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
	Cache    CacheConfig    `yaml:"cache"`
	Backends BackendsConfig `yaml:"backends"`
	Search   SearchConfig   `yaml:"search"`
}

// HTTPConfig holds inbound HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// AuthConfig holds API authentication settings. An empty key list
// disables authentication.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// CacheConfig holds result-cache settings. An explicit ttl_sec of 0
// disables caching; omitting it keeps the five-minute default.
type CacheConfig struct {
	Driver           string   `yaml:"driver"` // redis, memory (default: memory)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLSec           *int     `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TTL returns the configured cache TTL. Zero means caching disabled.
func (c CacheConfig) TTL() time.Duration {
	if c.TTLSec == nil {
		return 0
	}
	return time.Duration(*c.TTLSec) * time.Second
}

// BackendsConfig holds the outbound backend settings.
type BackendsConfig struct {
	TimeoutSec int              `yaml:"timeout_sec"`
	Jira       JiraConfig       `yaml:"jira"`
	Confluence ConfluenceConfig `yaml:"confluence"`
}

// JiraConfig holds issue-tracker settings. An empty URL disables the
// backend. Token auth takes precedence over username/password.
type JiraConfig struct {
	URL           string   `yaml:"url"`
	Username      string   `yaml:"username"`
	Password      string   `yaml:"password"`
	Token         string   `yaml:"token"` // personal access token
	TLSSkipVerify bool     `yaml:"tls_skip_verify"`
	LegacyTLS     bool     `yaml:"legacy_tls"`
	MaxResults    int      `yaml:"max_results"`
	Projects      []string `yaml:"projects"`    // empty = all projects
	IssueTypes    []string `yaml:"issue_types"` // empty = all types
}

// ConfluenceConfig holds wiki settings. An empty URL disables the
// backend. Token auth takes precedence over username/password.
type ConfluenceConfig struct {
	URL           string   `yaml:"url"`
	Username      string   `yaml:"username"`
	Password      string   `yaml:"password"`
	Token         string   `yaml:"token"` // personal access token
	TLSSkipVerify bool     `yaml:"tls_skip_verify"`
	LegacyTLS     bool     `yaml:"legacy_tls"`
	MaxResults    int      `yaml:"max_results"`
	Spaces        []string `yaml:"spaces"` // empty = all spaces
}

// SearchConfig holds the term-derivation rules and visibility filters.
type SearchConfig struct {
	DeviceFields []rule.FieldRule `yaml:"device_fields"`
	VMFields     []rule.FieldRule `yaml:"vm_fields"`
	// DeviceTypeFilters are case-insensitive regex patterns matched
	// against the device manufacturer; empty = all devices.
	DeviceTypeFilters []string `yaml:"device_type_filters"`
}

// Load reads configuration from a YAML file by environment name
// (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR} / ${VAR:-default}
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

// GetEnv returns the current environment from the ENV variable,
// defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// DefaultDeviceFields is the out-of-the-box rule set for devices.
func DefaultDeviceFields() []rule.FieldRule {
	return []rule.FieldRule{
		{Name: "Hostname", Attribute: "name", Enabled: true},
		{Name: "Serial", Attribute: "serial", Enabled: true},
		{Name: "Asset Tag", Attribute: "asset_tag", Enabled: false},
		{Name: "Role", Attribute: "role.name", Enabled: false},
		{Name: "Primary IP", Attribute: "primary_ip4.address", Enabled: false},
	}
}

// DefaultVMFields is the out-of-the-box rule set for virtual machines.
func DefaultVMFields() []rule.FieldRule {
	return []rule.FieldRule{
		{Name: "Name", Attribute: "name", Enabled: true},
		{Name: "Primary IP", Attribute: "primary_ip4.address", Enabled: true},
	}
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Outbound backend calls run inside the handler; leave headroom
		// for two sequential backend timeouts.
		c.HTTP.WriteTimeoutSec = 70
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Cache.Driver == "" {
		c.Cache.Driver = "memory"
	}
	if c.Cache.TTLSec == nil {
		// Five minutes, matching the upstream plugin default.
		ttl := 300
		c.Cache.TTLSec = &ttl
	} else if *c.Cache.TTLSec < 0 {
		*c.Cache.TTLSec = 0
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Backends.TimeoutSec <= 0 {
		c.Backends.TimeoutSec = 30
	}
	if c.Backends.Jira.MaxResults <= 0 {
		c.Backends.Jira.MaxResults = 10
	}
	if c.Backends.Confluence.MaxResults <= 0 {
		c.Backends.Confluence.MaxResults = 10
	}
	if len(c.Search.DeviceFields) == 0 {
		c.Search.DeviceFields = DefaultDeviceFields()
	}
	if len(c.Search.VMFields) == 0 {
		c.Search.VMFields = DefaultVMFields()
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Cache.Driver {
	case "redis":
		if len(c.Cache.Addrs) == 0 {
			return fmt.Errorf("cache.addrs is required for the redis driver")
		}
	case "memory":
		// ok
	default:
		return fmt.Errorf("cache.driver must be \"redis\" or \"memory\", got %q", c.Cache.Driver)
	}
	if c.Backends.Jira.MaxResults > 100 {
		return fmt.Errorf("backends.jira.max_results must be at most 100, got %d", c.Backends.Jira.MaxResults)
	}
	if c.Backends.Confluence.MaxResults > 100 {
		return fmt.Errorf("backends.confluence.max_results must be at most 100, got %d",
			c.Backends.Confluence.MaxResults)
	}
	for _, r := range c.Search.DeviceFields {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("search.device_fields: %w", err)
		}
	}
	for _, r := range c.Search.VMFields {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("search.vm_fields: %w", err)
		}
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
