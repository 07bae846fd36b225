package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tubechat/tubechat/pkg/utils"
)

// OpenAIEmbedder implements Embedder against the OpenAI /v1/embeddings endpoint.
// A whole transcript's chunks go out as one batched request; the response order
// matches the input order. Vectors are L2-normalized so that inner product
// equals cosine similarity in the vector index.
type OpenAIEmbedder struct {
	endpoint   string
	key        string
	model      string
	dimensions int
	httpc      *http.Client
}

// NewOpenAIEmbedder creates an embedder for the given endpoint, API key, and model.
func NewOpenAIEmbedder(endpoint, key, model string, dimensions int, timeout time.Duration) *OpenAIEmbedder {
	return &OpenAIEmbedder{
		endpoint:   strings.TrimRight(endpoint, "/"),
		key:        key,
		model:      model,
		dimensions: dimensions,
		httpc:      &http.Client{Timeout: timeout},
	}
}

type embeddingsRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingsResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Embed returns the embedding for a single text.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	out, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// EmbedBatch embeds all texts in one request, preserving input order.
func (e *OpenAIEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	body, err := json.Marshal(embeddingsRequest{Model: e.model, Input: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint+"/v1/embeddings", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+e.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	defer resp.Body.Close()

	var out embeddingsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 128*1024*1024)).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode embeddings response: %w", err)
	}
	if out.Error != nil {
		return nil, fmt.Errorf("embeddings API: %s", out.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings API: status %d", resp.StatusCode)
	}
	if len(out.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API: got %d vectors for %d inputs", len(out.Data), len(texts))
	}

	// The API documents data as input-ordered; indices make that explicit.
	vectors := make([][]float32, len(texts))
	for _, d := range out.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embeddings API: index %d out of range", d.Index)
		}
		vec := d.Embedding
		utils.NormalizeL2(vec)
		vectors[d.Index] = vec
	}
	for i, v := range vectors {
		if v == nil {
			return nil, fmt.Errorf("embeddings API: missing vector for input %d", i)
		}
	}
	return vectors, nil
}

// Dimensions returns the embedding dimension.
func (e *OpenAIEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op for OpenAIEmbedder.
func (e *OpenAIEmbedder) Close() error {
	return nil
}
