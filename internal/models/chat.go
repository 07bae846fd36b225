// Package models defines core data structures for videos, transcript chunks, and conversations.
package models

// Video identifies the YouTube video a session is grounded in.
type Video struct {
	ID           string `json:"id"`
	URL          string `json:"url,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

// TranscriptChunk is a contiguous span of transcript text, the unit of retrieval.
// Chunks are immutable once created and keep their original transcript order.
type TranscriptChunk struct {
	ID         string    `json:"id"`
	VideoID    string    `json:"video_id"`
	Content    string    `json:"content"`
	ChunkIndex int       `json:"chunk_index"`
	Embedding  []float32 `json:"-"`
}

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ConversationTurn is one message in a chat session's bounded history.
type ConversationTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// RetrievedChunk is a chunk returned by similarity retrieval, nearest-first.
type RetrievedChunk struct {
	Chunk *TranscriptChunk `json:"chunk"`
	Score float64          `json:"score"`
}

// QuoteResult is a keyword (exact-phrase) hit in the transcript.
type QuoteResult struct {
	Chunk *TranscriptChunk `json:"chunk"`
	Score float64          `json:"score"`
}
