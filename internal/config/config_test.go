package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"skirmish-server/internal/domain"
	"skirmish-server/internal/engine"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skirmish.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "8080" || cfg.Engine.MaxRounds != engine.DefaultMaxRounds {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Expected :8080, got %s", cfg.Addr())
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
[server]
port = "9000"
read_header_timeout = "2s"

[engine]
max_rounds = 5
combo_decay_ms = 3000

[replay]
enabled = false
`)
	t.Setenv("SKIRMISH_MAX_ROUNDS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Port != "9000" {
		t.Errorf("Expected port from file, got %s", cfg.Server.Port)
	}
	if cfg.Server.ReadHeaderTimeout != 2*time.Second {
		t.Errorf("Expected 2s, got %s", cfg.Server.ReadHeaderTimeout)
	}
	if cfg.Engine.MaxRounds != 7 {
		t.Errorf("Env must override file: got %d", cfg.Engine.MaxRounds)
	}
	if cfg.Engine.ComboDecayMs != 3000 || cfg.Engine.TickIntervalMs != engine.DefaultTickIntervalMs {
		t.Errorf("Unexpected engine section: %+v", cfg.Engine)
	}
	if cfg.Replay.Enabled {
		t.Error("Replays must be disabled by file")
	}
}

func TestLoad_PortFromEnv(t *testing.T) {
	t.Setenv("CD_PORT", "7777")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Port != "7777" {
		t.Errorf("Expected 7777, got %s", cfg.Server.Port)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(writeConfig(t, "[engine\nmax_rounds = 1")); err == nil {
		t.Error("Expected parse error")
	}
	if _, err := Load(writeConfig(t, "[engine]\nmax_rounds = 0")); err == nil || !strings.Contains(err.Error(), "max_rounds") {
		t.Errorf("Expected validation error, got %v", err)
	}

	t.Setenv("SKIRMISH_MAX_ROUNDS", "many")
	if _, err := Load(""); err == nil {
		t.Error("Expected env parse error")
	}
}

func TestValidate_CollectsAll(t *testing.T) {
	cfg := Defaults()
	cfg.Server.Port = ""
	cfg.Engine.TickIntervalMs = -1
	cfg.Replay.Dir = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, part := range []string{"server.port", "tick_interval_ms", "replay.dir"} {
		if !strings.Contains(err.Error(), part) {
			t.Errorf("Error %q must mention %s", err, part)
		}
	}
}

func TestEngineConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Engine.MaxRounds = 3

	ec := cfg.EngineConfig()
	if ec.MaxRounds != 3 || ec.ComboDecayMs != engine.DefaultComboDecayMs {
		t.Errorf("Unexpected engine config: %+v", ec)
	}
	if ec.Mode != domain.ModePvE {
		t.Errorf("Expected default mode pve, got %s", ec.Mode)
	}
}
