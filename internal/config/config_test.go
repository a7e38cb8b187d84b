package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database addrs")
	}
}

func TestValidate_AuthKeyWithoutTenant(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Keys = map[string]string{"sk-12345678": ""}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for key without tenant")
	}
	// Error messages must not print the full key
	if strings.Contains(err.Error(), "sk-12345678") {
		t.Errorf("error message leaks the api key: %v", err)
	}
}

func TestValidate_MinRatingAboveScale(t *testing.T) {
	cfg := validConfig()
	cfg.Tenants.DefaultMinRating = 6

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for min rating above 5")
	}
}

func TestValidate_ValidAuthKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Keys = map[string]string{"key-a": "acme", "key-b": "globex"}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Database.Driver != "valkey" {
		t.Errorf("expected driver valkey, got %q", cfg.Database.Driver)
	}
	if cfg.Index.HNSWM != 32 || cfg.Index.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSW defaults 32/400, got %d/%d", cfg.Index.HNSWM, cfg.Index.HNSWEFConstruct)
	}
	if cfg.Embedding.Dimensions != 1024 {
		t.Errorf("expected 1024 dimensions, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.LLM.MaxTokens != 300 {
		t.Errorf("expected 300 max tokens, got %d", cfg.LLM.MaxTokens)
	}
	if cfg.Tenants.DefaultMaxResults != 5 {
		t.Errorf("expected 5 default max results, got %d", cfg.Tenants.DefaultMaxResults)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := Config{
		Tenants: TenantsConfig{DefaultMinRating: 4.0, DefaultMaxResults: 3},
		LLM:     LLMConfig{MaxTokens: 500},
	}
	cfg.ApplyDefaults()

	if cfg.Tenants.DefaultMinRating != 4.0 || cfg.Tenants.DefaultMaxResults != 3 {
		t.Errorf("explicit tenant defaults overwritten: %+v", cfg.Tenants)
	}
	if cfg.LLM.MaxTokens != 500 {
		t.Errorf("explicit max tokens overwritten: %d", cfg.LLM.MaxTokens)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	data := `
http:
  port: 8080
database:
  addrs: ["localhost:6379"]
llm:
  api_key: ${ATLAS_TEST_LLM_KEY}
auth:
  keys:
    ${ATLAS_TEST_API_KEY:-fallback-key}: acme
`
	if err := os.Mkdir(filepath.Join(dir, "config"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config", "test.yaml"), []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ATLAS_TEST_LLM_KEY", "sk-from-env")
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			t.Fatal(err)
		}
	})

	cfg, err := Load("test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.LLM.APIKey != "sk-from-env" {
		t.Errorf("env var not expanded: %q", cfg.LLM.APIKey)
	}
	if cfg.Auth.Keys["fallback-key"] != "acme" {
		t.Errorf("default expansion failed: %v", cfg.Auth.Keys)
	}
}
