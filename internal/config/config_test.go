package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PRAXIS_LISTEN_ADDR", "")
	t.Setenv("PRAXIS_DB_PATH", "")
	t.Setenv("PRAXIS_SOCKET_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() without config file failed: %v", err)
	}

	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("ListenAddr = %s, want default %s", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.DatabasePath != "" {
		t.Errorf("DatabasePath = %s, want empty (database layer default)", cfg.DatabasePath)
	}
	if !strings.HasSuffix(cfg.SocketPath, "praxis.sock") {
		t.Errorf("SocketPath = %s, want a praxis.sock default", cfg.SocketPath)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)
	t.Setenv("PRAXIS_LISTEN_ADDR", "")
	t.Setenv("PRAXIS_DB_PATH", "")
	t.Setenv("PRAXIS_SOCKET_PATH", "")

	configDir := filepath.Join(tempDir, "praxis")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	content := "listen_addr: 0.0.0.0:9000\ndatabase_path: /tmp/test.db\nsocket_path: /tmp/test.sock\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Errorf("ListenAddr = %s, want 0.0.0.0:9000", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "/tmp/test.db" {
		t.Errorf("DatabasePath = %s, want /tmp/test.db", cfg.DatabasePath)
	}
	if cfg.SocketPath != "/tmp/test.sock" {
		t.Errorf("SocketPath = %s, want /tmp/test.sock", cfg.SocketPath)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "praxis")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("listen_addr: 0.0.0.0:9000\n"), 0o644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	t.Setenv("PRAXIS_LISTEN_ADDR", "127.0.0.1:7777")
	t.Setenv("PRAXIS_DB_PATH", "/tmp/env.db")
	t.Setenv("PRAXIS_SOCKET_PATH", "/tmp/env.sock")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.ListenAddr != "127.0.0.1:7777" {
		t.Errorf("ListenAddr = %s, want env override 127.0.0.1:7777", cfg.ListenAddr)
	}
	if cfg.DatabasePath != "/tmp/env.db" {
		t.Errorf("DatabasePath = %s, want env override /tmp/env.db", cfg.DatabasePath)
	}
	if cfg.SocketPath != "/tmp/env.sock" {
		t.Errorf("SocketPath = %s, want env override /tmp/env.sock", cfg.SocketPath)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PRAXIS_LISTEN_ADDR", "")
	t.Setenv("PRAXIS_DB_PATH", "")
	t.Setenv("PRAXIS_SOCKET_PATH", "")

	original := &Config{
		ListenAddr:   "127.0.0.1:8001",
		DatabasePath: "/tmp/roundtrip.db",
		SocketPath:   "/tmp/roundtrip.sock",
	}
	if err := original.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if loaded.ListenAddr != original.ListenAddr {
		t.Errorf("ListenAddr = %s, want %s", loaded.ListenAddr, original.ListenAddr)
	}
	if loaded.DatabasePath != original.DatabasePath {
		t.Errorf("DatabasePath = %s, want %s", loaded.DatabasePath, original.DatabasePath)
	}
}
