// Package indexer builds per-video retrieval indices from transcript text.
package indexer

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tubechat/tubechat/internal/embedding"
	"github.com/tubechat/tubechat/internal/keyword"
	"github.com/tubechat/tubechat/internal/models"
	"github.com/tubechat/tubechat/internal/vector"
)

// ErrIndexNotReady is returned when retrieval is attempted before a transcript
// has been indexed.
var ErrIndexNotReady = errors.New("index not ready: no transcript indexed")

// Index holds the retrieval state for one video: the ordered chunks, a vector
// index over their embeddings, and a keyword index for quote search. An Index
// is built once and never mutated afterwards.
type Index struct {
	videoID  string
	chunks   []*models.TranscriptChunk
	byID     map[string]*models.TranscriptChunk
	vectors  *vector.MemoryIndex
	keywords *keyword.BleveIndex
}

// VideoID returns the video this index was built from.
func (ix *Index) VideoID() string { return ix.videoID }

// Chunks returns the transcript chunks in original order.
func (ix *Index) Chunks() []*models.TranscriptChunk { return ix.chunks }

// Size returns the number of indexed chunks.
func (ix *Index) Size() int {
	if ix == nil {
		return 0
	}
	return len(ix.chunks)
}

// Close releases the underlying indices.
func (ix *Index) Close() error {
	if ix == nil {
		return nil
	}
	if err := ix.keywords.Close(); err != nil {
		return err
	}
	return ix.vectors.Close()
}

// Indexer chunks transcripts, embeds the chunks, and assembles Index values.
type Indexer struct {
	embedder embedding.Embedder
	chunker  *Chunker
	logger   *zap.Logger
}

// New creates an indexer.
func New(embedder embedding.Embedder, chunker *Chunker, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{embedder: embedder, chunker: chunker, logger: logger}
}

// Build chunks the transcript, embeds every chunk in one batch, and returns a
// ready Index. The transcript must be non-empty.
func (idx *Indexer) Build(ctx context.Context, videoID, transcript string) (*Index, error) {
	parts := idx.chunker.Split(transcript)
	if len(parts) == 0 {
		return nil, fmt.Errorf("transcript for video %s is empty", videoID)
	}

	chunks := make([]*models.TranscriptChunk, len(parts))
	texts := make([]string, len(parts))
	for i, p := range parts {
		chunks[i] = &models.TranscriptChunk{
			ID:         uuid.New().String(),
			VideoID:    videoID,
			Content:    p,
			ChunkIndex: i,
		}
		texts[i] = p
	}

	vectors, err := idx.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("failed to embed transcript chunks: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, expected %d", len(vectors), len(chunks))
	}

	mem, err := vector.NewMemoryIndex(idx.embedder.Dimensions())
	if err != nil {
		return nil, err
	}
	kw, err := keyword.NewBleveIndex()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(chunks))
	byID := make(map[string]*models.TranscriptChunk, len(chunks))
	for i, ch := range chunks {
		ch.Embedding = vectors[i]
		ids[i] = ch.ID
		byID[ch.ID] = ch
		if err := kw.Index(ctx, ch); err != nil {
			return nil, fmt.Errorf("failed to index chunk %d: %w", i, err)
		}
	}
	if err := mem.Add(ctx, ids, vectors); err != nil {
		return nil, err
	}

	idx.logger.Info("transcript indexed",
		zap.String("video_id", videoID),
		zap.Int("chunks", len(chunks)),
		zap.Int("dimensions", idx.embedder.Dimensions()))
	if idx.logger.Core().Enabled(zapcore.DebugLevel) {
		for _, ch := range chunks {
			idx.logger.Debug("chunk embedded",
				zap.String("chunk_id", ch.ID),
				zap.Int("chunk_index", ch.ChunkIndex),
				zap.Int("content_len", len(ch.Content)),
				zap.Float32s("vector_head", vectorHead(ch.Embedding, 8)))
		}
	}

	return &Index{
		videoID:  videoID,
		chunks:   chunks,
		byID:     byID,
		vectors:  mem,
		keywords: kw,
	}, nil
}

// Retrieve embeds the query and returns up to k chunks nearest to it,
// most similar first.
func (idx *Indexer) Retrieve(ctx context.Context, ix *Index, query string, k int) ([]*models.RetrievedChunk, error) {
	if ix.Size() == 0 {
		return nil, ErrIndexNotReady
	}
	qvec, err := idx.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	hits, err := ix.vectors.Search(ctx, qvec, k)
	if err != nil {
		return nil, err
	}
	out := make([]*models.RetrievedChunk, 0, len(hits))
	for _, h := range hits {
		ch, ok := ix.byID[h.ID]
		if !ok {
			continue
		}
		out = append(out, &models.RetrievedChunk{Chunk: ch, Score: h.Score})
	}
	return out, nil
}

// SearchQuotes runs a keyword search for the phrase over the indexed chunks.
func (idx *Indexer) SearchQuotes(ctx context.Context, ix *Index, phrase string, limit int) ([]*models.QuoteResult, error) {
	if ix.Size() == 0 {
		return nil, ErrIndexNotReady
	}
	hits, err := ix.keywords.Search(ctx, phrase, limit)
	if err != nil {
		return nil, err
	}
	out := make([]*models.QuoteResult, 0, len(hits))
	for _, h := range hits {
		ch, ok := ix.byID[h.ID]
		if !ok {
			continue
		}
		out = append(out, &models.QuoteResult{Chunk: ch, Score: h.Score})
	}
	return out, nil
}

func vectorHead(v []float32, n int) []float32 {
	if len(v) < n {
		n = len(v)
	}
	return v[:n]
}
