// Package keyword provides exact-quote (keyword) search over transcript chunks.
package keyword

import (
	"context"

	"github.com/tubechat/tubechat/internal/models"
)

// KeywordIndex defines keyword search operations over one transcript's chunks.
type KeywordIndex interface {
	Index(ctx context.Context, chunk *models.TranscriptChunk) error
	Search(ctx context.Context, query string, limit int) ([]*KeywordResult, error)
	DocCount() (uint64, error)
	Close() error
}

// KeywordResult is a single keyword search hit.
type KeywordResult struct {
	ID    string
	Score float64
}
