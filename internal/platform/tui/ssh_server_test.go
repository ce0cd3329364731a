package tui

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestHostKeyPathCreatesDirectory(t *testing.T) {
	want := filepath.Join(t.TempDir(), "keys", "nested", "host_key")

	got, err := hostKeyPath(want)
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if got != want {
		t.Errorf("hostKeyPath() = %q, want %q", got, want)
	}
	info, err := os.Stat(filepath.Dir(want))
	if err != nil {
		t.Fatalf("key directory not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o700 {
		t.Errorf("key directory mode = %o, want 700", perm)
	}
}

func TestHostKeyPathDefaultsUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := hostKeyPath("")
	if err != nil {
		t.Fatalf("hostKeyPath() error = %v", err)
	}
	if want := filepath.Join(home, ".survivor", "host_key"); got != want {
		t.Errorf("hostKeyPath() = %q, want %q", got, want)
	}
}

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23234" || cfg.TickRate != 60 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, want 30m", cfg.IdleTimeout)
	}
}
