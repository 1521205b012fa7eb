package config

import (
	"testing"

	"github.com/spf13/viper"
)

func loadClean(t *testing.T) *Config {
	t.Helper()
	viper.Reset()
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := loadClean(t)

	if cfg.Server.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.Server.HTTPPort)
	}
	if cfg.Server.Environment != "development" {
		t.Errorf("Environment = %q, want development", cfg.Server.Environment)
	}
	if cfg.Media.MaxUploadSize != 5*1024*1024 {
		t.Errorf("MaxUploadSize = %d, want 5 MB", cfg.Media.MaxUploadSize)
	}
	if cfg.Auth.TokenTTLMinutes != 720 {
		t.Errorf("TokenTTLMinutes = %d, want 720", cfg.Auth.TokenTTLMinutes)
	}
}

func TestEnvOverridesNestedKeys(t *testing.T) {
	t.Setenv("CLUBHUB_SERVER_HTTPPORT", "9999")
	t.Setenv("CLUBHUB_SERVER_LOGLEVEL", "debug")
	t.Setenv("CLUBHUB_MEDIA_MAXUPLOADSIZE", "1048576")

	cfg := loadClean(t)

	if cfg.Server.HTTPPort != 9999 {
		t.Errorf("HTTPPort = %d, want 9999 from environment", cfg.Server.HTTPPort)
	}
	if cfg.Server.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug from environment", cfg.Server.LogLevel)
	}
	if cfg.Media.MaxUploadSize != 1048576 {
		t.Errorf("MaxUploadSize = %d, want 1048576 from environment", cfg.Media.MaxUploadSize)
	}
}
