// Package keyword provides a Bleve implementation of KeywordIndex.
package keyword

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/tubechat/tubechat/internal/models"
)

// BleveIndex implements KeywordIndex with an in-memory Bleve index. The index
// lives and dies with its chat session; nothing touches disk.
type BleveIndex struct {
	index bleve.Index
}

// chunkDoc is the shape Bleve indexes per chunk.
type chunkDoc struct {
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
}

// NewBleveIndex creates an in-memory Bleve index for transcript chunks.
func NewBleveIndex() (*BleveIndex, error) {
	im := bleve.NewIndexMapping()

	docMapping := bleve.NewDocumentMapping()
	textFieldMapping := bleve.NewTextFieldMapping()
	// Standard analyzer (lowercase + tokenize, no stemming) so a quoted phrase
	// matches the transcript words exactly as spoken.
	textFieldMapping.Analyzer = standard.Name
	docMapping.AddFieldMappingsAt("content", textFieldMapping)
	im.AddDocumentMapping("chunk", docMapping)
	im.DefaultType = "chunk"
	im.DefaultMapping = docMapping

	index, err := bleve.NewMemOnly(im)
	if err != nil {
		return nil, fmt.Errorf("failed to create Bleve index: %w", err)
	}
	return &BleveIndex{index: index}, nil
}

// Index indexes a transcript chunk by its ID.
func (b *BleveIndex) Index(ctx context.Context, chunk *models.TranscriptChunk) error {
	return b.index.Index(chunk.ID, chunkDoc{Content: chunk.Content, ChunkIndex: chunk.ChunkIndex})
}

// Search runs a phrase-boosted match query over chunk content and returns up to
// limit hits. Chunks containing the query terms as an adjacent phrase score
// higher than chunks that merely contain the words.
func (b *BleveIndex) Search(ctx context.Context, query string, limit int) ([]*KeywordResult, error) {
	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetField("content")
	phraseQuery := bleve.NewMatchPhraseQuery(query)
	phraseQuery.SetField("content")
	phraseQuery.SetBoost(2.0)

	search := bleve.NewSearchRequest(bleve.NewDisjunctionQuery(matchQuery, phraseQuery))
	search.Size = limit
	results, err := b.index.Search(search)
	if err != nil {
		return nil, fmt.Errorf("Bleve search failed: %w", err)
	}
	out := make([]*KeywordResult, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &KeywordResult{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// DocCount returns the total number of chunks in the index.
func (b *BleveIndex) DocCount() (uint64, error) {
	return b.index.DocCount()
}

// Close closes the Bleve index.
func (b *BleveIndex) Close() error {
	return b.index.Close()
}
