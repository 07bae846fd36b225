package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("debug: true\nserver:\n  port: 9999\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, resolved, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if resolved != path {
		t.Errorf("resolved path: got %s", resolved)
	}
	if !cfg.Debug || cfg.Server.Port != 9999 {
		t.Errorf("config: %+v", cfg)
	}
}

func TestLoadConfigCwdFallback(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("server:\n  port: 7777\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})

	cfg, resolved, err := loadConfig(defaultConfigPath)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if filepath.Base(resolved) != "config.yaml" {
		t.Errorf("resolved path: got %s", resolved)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	// Defaults fill everything not in the file.
	if cfg.OpenAI.ChatModel == "" || cfg.Chat.ChunkSize == 0 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
