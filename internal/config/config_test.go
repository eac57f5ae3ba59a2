package config

import (
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func validConfig() Config {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()
	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 70 {
		t.Errorf("expected WriteTimeoutSec=70, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Cache.Driver != "memory" {
		t.Errorf("expected memory cache driver, got %q", cfg.Cache.Driver)
	}
	if cfg.Cache.TTL() != 5*time.Minute {
		t.Errorf("expected 5m default TTL, got %v", cfg.Cache.TTL())
	}
	if cfg.Backends.TimeoutSec != 30 {
		t.Errorf("expected backend timeout 30, got %d", cfg.Backends.TimeoutSec)
	}
	if cfg.Backends.Jira.MaxResults != 10 || cfg.Backends.Confluence.MaxResults != 10 {
		t.Errorf("max_results = %d / %d", cfg.Backends.Jira.MaxResults, cfg.Backends.Confluence.MaxResults)
	}
	if len(cfg.Search.DeviceFields) == 0 || len(cfg.Search.VMFields) == 0 {
		t.Error("expected default field rules")
	}
	if cfg.Search.DeviceFields[0].Attribute != "name" || !cfg.Search.DeviceFields[0].Enabled {
		t.Errorf("unexpected first device rule: %+v", cfg.Search.DeviceFields[0])
	}
}

func TestCacheTTL_ExplicitZeroDisables(t *testing.T) {
	// Omitted ttl_sec keeps the default.
	var omitted Config
	if err := yaml.Unmarshal([]byte("cache:\n  driver: memory\n"), &omitted); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	omitted.ApplyDefaults()
	if omitted.Cache.TTL() != 5*time.Minute {
		t.Errorf("omitted ttl_sec: TTL = %v, want 5m", omitted.Cache.TTL())
	}

	// Explicit zero disables caching.
	var disabled Config
	if err := yaml.Unmarshal([]byte("cache:\n  driver: memory\n  ttl_sec: 0\n"), &disabled); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	disabled.ApplyDefaults()
	if disabled.Cache.TTL() != 0 {
		t.Errorf("explicit ttl_sec 0: TTL = %v, want 0", disabled.Cache.TTL())
	}

	// Negative values clamp to disabled.
	var negative Config
	if err := yaml.Unmarshal([]byte("cache:\n  ttl_sec: -5\n"), &negative); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	negative.ApplyDefaults()
	if negative.Cache.TTL() != 0 {
		t.Errorf("negative ttl_sec: TTL = %v, want 0", negative.Cache.TTL())
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_RedisNeedsAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "redis"
	cfg.Cache.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis driver without addrs")
	}
}

func TestValidate_UnknownDriver(t *testing.T) {
	cfg := validConfig()
	cfg.Cache.Driver = "memcached"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown cache driver")
	}
}

func TestValidate_MaxResultsCap(t *testing.T) {
	cfg := validConfig()
	cfg.Backends.Jira.MaxResults = 500

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for max_results above cap")
	}
}

func TestValidate_EnabledRuleNeedsAttribute(t *testing.T) {
	cfg := validConfig()
	cfg.Search.DeviceFields = append(cfg.Search.DeviceFields,
		DefaultDeviceFields()[0])
	cfg.Search.DeviceFields[len(cfg.Search.DeviceFields)-1].Attribute = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled rule without attribute")
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("ATLASBRIDGE_TEST_URL", "https://jira.example.com")

	data := expandEnvVars([]byte(
		"url: ${ATLASBRIDGE_TEST_URL}\ntoken: ${ATLASBRIDGE_TEST_ABSENT:-fallback}\nempty: ${ATLASBRIDGE_TEST_ABSENT}\n"))

	want := "url: https://jira.example.com\ntoken: fallback\nempty: \n"
	if string(data) != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", data, want)
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	cfg, err := Load("local")
	if err != nil {
		t.Fatalf("Load(local): %v", err)
	}
	if cfg.HTTP.Port != 8080 {
		t.Errorf("port = %d", cfg.HTTP.Port)
	}
	if cfg.Cache.Driver != "memory" {
		t.Errorf("cache driver = %q", cfg.Cache.Driver)
	}
	if len(cfg.Search.DeviceFields) != 5 {
		t.Errorf("device rules = %d, want 5", len(cfg.Search.DeviceFields))
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("ENV", "")
	if got := GetEnv(); got != "local" {
		t.Errorf("GetEnv = %q, want local", got)
	}

	t.Setenv("ENV", "prod")
	if got := GetEnv(); got != "prod" {
		t.Errorf("GetEnv = %q, want prod", got)
	}
}
