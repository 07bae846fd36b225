// Package cli provides output utilities for the tubechat command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tubechat/tubechat/internal/models"
)

// OutputFormat is the format for CLI output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// WriteVideoInfo writes the loaded video summary to w.
func WriteVideoInfo(w io.Writer, video *models.Video, chunks int) {
	fmt.Fprintf(w, "Video: %s\n", video.ID)
	if video.URL != "" {
		fmt.Fprintf(w, "URL: %s\n", video.URL)
	}
	fmt.Fprintf(w, "Indexed %d transcript chunks. Ask away (Ctrl-D to quit).\n\n", chunks)
}

// WriteHistory writes the conversation history to w in the given format.
func WriteHistory(w io.Writer, history []models.ConversationTurn, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(history)
	}
	for _, turn := range history {
		fmt.Fprintf(w, "%s: %s\n", turn.Role, turn.Content)
	}
	return nil
}

// WriteQuotes writes quote search hits to w in the given format.
func WriteQuotes(w io.Writer, quotes []*models.QuoteResult, format OutputFormat) error {
	if format == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(quotes)
	}
	if len(quotes) == 0 {
		fmt.Fprintln(w, "No matches.")
		return nil
	}
	for _, q := range quotes {
		fmt.Fprintf(w, "[chunk %d] score %.4f\n%s\n\n", q.Chunk.ChunkIndex, q.Score, Truncate(q.Chunk.Content, 200))
	}
	return nil
}

// Truncate truncates s to maxLen and appends "..." if truncated.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
