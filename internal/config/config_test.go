package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ReadsFileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
storage_path: "postgres://localhost/salon"
http_server:
  timeout: 7s
booking:
  advance_days: 14
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.HTTPServer.Timeout != 7*time.Second {
		t.Fatalf("expected timeout 7s, got %s", cfg.HTTPServer.Timeout)
	}
	if cfg.Booking.AdvanceDays != 14 {
		t.Fatalf("expected advance_days 14, got %d", cfg.Booking.AdvanceDays)
	}
	if cfg.Booking.LockTTL != 10*time.Second {
		t.Fatalf("expected default lock_ttl 10s, got %s", cfg.Booking.LockTTL)
	}
	if cfg.Booking.CancellationHoursBefore != 2 {
		t.Fatalf("expected default cancellation window 2h, got %d", cfg.Booking.CancellationHoursBefore)
	}
	if cfg.RateLimit.Burst != 5 {
		t.Fatalf("expected default burst 5, got %d", cfg.RateLimit.Burst)
	}
	if cfg.RateLimit.TrustProxy {
		t.Fatal("expected trust_proxy to default to false")
	}
	if cfg.RateLimit.IdleTTL != 10*time.Minute {
		t.Fatalf("expected default idle_ttl 10m, got %s", cfg.RateLimit.IdleTTL)
	}
	if cfg.Booking.ReminderHoursBefore != 24 {
		t.Fatalf("expected default reminder window 24h, got %d", cfg.Booking.ReminderHoursBefore)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("STORAGE_PATH", "postgres://env/salon")
	path := writeConfig(t, `storage_path: "postgres://file/salon"`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.StoragePath != "postgres://env/salon" {
		t.Fatalf("expected env storage path, got %q", cfg.StoragePath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
