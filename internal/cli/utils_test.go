package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/tubechat/tubechat/internal/models"
)

func TestWriteHistoryText(t *testing.T) {
	var buf bytes.Buffer
	history := []models.ConversationTurn{
		{Role: models.RoleUser, Content: "what is this about"},
		{Role: models.RoleAssistant, Content: "Go concurrency."},
	}
	if err := WriteHistory(&buf, history, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "user: what is this about") || !strings.Contains(out, "assistant: Go concurrency.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestWriteHistoryJSON(t *testing.T) {
	var buf bytes.Buffer
	history := []models.ConversationTurn{{Role: models.RoleUser, Content: "q"}}
	if err := WriteHistory(&buf, history, OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded []models.ConversationTurn
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Content != "q" {
		t.Errorf("decoded: %+v", decoded)
	}
}

func TestWriteQuotes(t *testing.T) {
	var buf bytes.Buffer
	quotes := []*models.QuoteResult{
		{Chunk: &models.TranscriptChunk{ChunkIndex: 2, Content: "the quick brown fox"}, Score: 1.5},
	}
	if err := WriteQuotes(&buf, quotes, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "[chunk 2]") || !strings.Contains(buf.String(), "brown fox") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	buf.Reset()
	if err := WriteQuotes(&buf, nil, OutputText); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "No matches.") {
		t.Errorf("unexpected output for empty quotes:\n%s", buf.String())
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("hello", 10); got != "hello" {
		t.Errorf("got %q", got)
	}
	if got := Truncate("hello world", 5); got != "hello..." {
		t.Errorf("got %q", got)
	}
	if got := Truncate("hello", 0); got != "hello" {
		t.Errorf("got %q", got)
	}
}
