package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yungbote/studydeck-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("production")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	cfg := LoadConfig(testLogger(t))
	if cfg.Port != "8080" {
		t.Fatalf("unexpected default port: %q", cfg.Port)
	}
	if cfg.AccessTokenTTL != time.Hour {
		t.Fatalf("unexpected default access ttl: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 24*time.Hour {
		t.Fatalf("unexpected default refresh ttl: %v", cfg.RefreshTokenTTL)
	}
	if cfg.SignalSessionTTL != 5*time.Minute {
		t.Fatalf("unexpected default signal ttl: %v", cfg.SignalSessionTTL)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("PORT", "9999")
	t.Setenv("ACCESS_TOKEN_TTL", "120")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	cfg := LoadConfig(testLogger(t))
	if cfg.Port != "9999" {
		t.Fatalf("env port not applied: %q", cfg.Port)
	}
	if cfg.AccessTokenTTL != 2*time.Minute {
		t.Fatalf("env access ttl not applied: %v", cfg.AccessTokenTTL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Fatalf("env redis addr not applied: %q", cfg.RedisAddr)
	}
}

func TestLoadConfigFileOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "port: \"7777\"\njwt_secret_key: filekey\nrefresh_token_ttl_seconds: 60\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9999")
	cfg := LoadConfig(testLogger(t))
	if cfg.Port != "7777" {
		t.Fatalf("file port not applied: %q", cfg.Port)
	}
	if cfg.JWTSecretKey != "filekey" {
		t.Fatalf("file secret not applied: %q", cfg.JWTSecretKey)
	}
	if cfg.RefreshTokenTTL != time.Minute {
		t.Fatalf("file refresh ttl not applied: %v", cfg.RefreshTokenTTL)
	}
}

func TestLoadConfigBadFileFallsBackToEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("{{{{"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9999")
	cfg := LoadConfig(testLogger(t))
	if cfg.Port != "9999" {
		t.Fatalf("expected env fallback port, got %q", cfg.Port)
	}
}
