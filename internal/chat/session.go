// Package chat orchestrates a single-video conversation: transcript ingestion,
// retrieval, prompting, and bounded history.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tubechat/tubechat/internal/indexer"
	"github.com/tubechat/tubechat/internal/llm"
	"github.com/tubechat/tubechat/internal/models"
	"github.com/tubechat/tubechat/internal/youtube"
)

// ErrInvalidURL is returned when no video identifier can be extracted from the
// user-supplied URL.
var ErrInvalidURL = errors.New("invalid YouTube URL")

// ErrIndexNotReady is returned when a question arrives before a video has been
// loaded into the session.
var ErrIndexNotReady = indexer.ErrIndexNotReady

// TranscriptFetcher fetches the full transcript text for a video ID.
type TranscriptFetcher interface {
	FetchTranscript(ctx context.Context, videoID string) (string, error)
}

// Session holds the state of one conversation: the video, its retrieval index,
// and a bounded history. A Session is not safe for concurrent use; callers
// serialize access.
type Session struct {
	transcripts  TranscriptFetcher
	indexer      *indexer.Indexer
	llm          llm.Client
	retrieveK    int
	historyLimit int
	logger       *zap.Logger

	video   *models.Video
	index   *indexer.Index
	history []models.ConversationTurn
}

// NewSession creates an empty session. retrieveK is the number of chunks
// retrieved per question; historyLimit bounds the conversation history.
func NewSession(transcripts TranscriptFetcher, idx *indexer.Indexer, llmClient llm.Client, retrieveK, historyLimit int, logger *zap.Logger) *Session {
	if retrieveK <= 0 {
		retrieveK = 6
	}
	if historyLimit <= 0 {
		historyLimit = 6
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		transcripts:  transcripts,
		indexer:      idx,
		llm:          llmClient,
		retrieveK:    retrieveK,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// LoadVideo parses the URL, fetches the transcript, and builds the retrieval
// index. On success the session becomes ready and any previous index and
// history are discarded; on failure the session state is unchanged.
func (s *Session) LoadVideo(ctx context.Context, rawURL string) error {
	videoID, ok := youtube.ExtractVideoID(rawURL)
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}
	transcript, err := s.transcripts.FetchTranscript(ctx, videoID)
	if err != nil {
		return err
	}
	ix, err := s.indexer.Build(ctx, videoID, transcript)
	if err != nil {
		return err
	}
	if s.index != nil {
		_ = s.index.Close()
	}
	s.index = ix
	s.video = &models.Video{
		ID:           videoID,
		URL:          youtube.WatchURL(videoID),
		ThumbnailURL: youtube.ThumbnailURL(videoID),
	}
	s.history = nil
	s.logger.Info("video loaded",
		zap.String("video_id", videoID),
		zap.Int("chunks", ix.Size()))
	return nil
}

// Answer retrieves transcript context for the question, invokes the language
// model, and records the exchange in history. On retrieval or completion
// failure the just-appended user turn is rolled back so history only reflects
// answered questions.
func (s *Session) Answer(ctx context.Context, question string) (string, error) {
	if s.index.Size() == 0 {
		return "", ErrIndexNotReady
	}
	s.evict()
	s.history = append(s.history, models.ConversationTurn{Role: models.RoleUser, Content: question})

	retrieved, err := s.indexer.Retrieve(ctx, s.index, question, s.retrieveK)
	if err != nil {
		s.rollback()
		return "", err
	}
	passages := make([]string, len(retrieved))
	for i, r := range retrieved {
		passages[i] = r.Chunk.Content
	}
	prompt := renderPrompt(s.history, strings.Join(passages, "\n\n"), question)

	answer, err := s.llm.Complete(ctx, prompt)
	if err != nil {
		s.rollback()
		return "", err
	}
	s.history = append(s.history, models.ConversationTurn{Role: models.RoleAssistant, Content: answer})
	s.evict()
	return answer, nil
}

// Quotes runs a keyword search for the phrase over the loaded transcript.
func (s *Session) Quotes(ctx context.Context, phrase string, limit int) ([]*models.QuoteResult, error) {
	if s.index.Size() == 0 {
		return nil, ErrIndexNotReady
	}
	return s.indexer.SearchQuotes(ctx, s.index, phrase, limit)
}

// History returns a copy of the conversation history, oldest first.
func (s *Session) History() []models.ConversationTurn {
	out := make([]models.ConversationTurn, len(s.history))
	copy(out, s.history)
	return out
}

// Ready reports whether a video has been loaded.
func (s *Session) Ready() bool { return s.index.Size() > 0 }

// Video returns the loaded video, or nil for an empty session.
func (s *Session) Video() *models.Video { return s.video }

// ChunkCount returns the number of indexed transcript chunks.
func (s *Session) ChunkCount() int { return s.index.Size() }

// Close releases the session's index.
func (s *Session) Close() error {
	if s.index == nil {
		return nil
	}
	return s.index.Close()
}

// evict drops the oldest turns while history exceeds the limit. Turns are
// dropped from the front so the remaining history stays in order.
func (s *Session) evict() {
	for len(s.history) > s.historyLimit {
		s.history = s.history[1:]
	}
}

// rollback removes the most recently appended turn.
func (s *Session) rollback() {
	s.history = s.history[:len(s.history)-1]
}
