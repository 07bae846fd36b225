package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
debug: true
server:
  host: 0.0.0.0
  port: 9090
openai:
  chat_model: gpt-4o
chat:
  retrieve_k: 3
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Debug {
		t.Error("debug should be true")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port: got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o" {
		t.Errorf("chat model: got %s", cfg.OpenAI.ChatModel)
	}
	if cfg.Chat.RetrieveK != 3 {
		t.Errorf("retrieve_k: got %d", cfg.Chat.RetrieveK)
	}
	// Unset values get defaults
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-large" {
		t.Errorf("embedding model default: got %s", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.Chat.ChunkSize != 800 || cfg.Chat.ChunkOverlap != 120 {
		t.Errorf("chunking defaults: got %d/%d", cfg.Chat.ChunkSize, cfg.Chat.ChunkOverlap)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: got %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.OpenAI.ChatModel != "gpt-4o-mini" {
		t.Errorf("chat model default: got %s", cfg.OpenAI.ChatModel)
	}
	if cfg.OpenAI.Dimensions != 3072 {
		t.Errorf("dimensions default: got %d", cfg.OpenAI.Dimensions)
	}
	if cfg.Chat.HistoryLimit != 6 || cfg.Chat.RetrieveK != 6 {
		t.Errorf("chat defaults: got limit=%d k=%d", cfg.Chat.HistoryLimit, cfg.Chat.RetrieveK)
	}
	if len(cfg.YouTube.Languages) != 1 || cfg.YouTube.Languages[0] != "en" {
		t.Errorf("languages default: got %v", cfg.YouTube.Languages)
	}
}

func TestLoadAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	key, err := LoadAPIKey()
	if err != nil {
		t.Fatalf("LoadAPIKey: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key: got %s", key)
	}
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := LoadAPIKey(); err == nil {
		t.Error("expected error for empty key")
	}
}
