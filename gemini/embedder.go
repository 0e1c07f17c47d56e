package gemini

import (
	"context"

	"github.com/fwojciec/webcite"
	"google.golang.org/genai"
)

// DefaultEmbeddingModel is the embedding model used when none is configured.
const DefaultEmbeddingModel = "gemini-embedding-001"

// Ensure Embedder implements webcite.Embedder at compile time.
var _ webcite.Embedder = (*Embedder)(nil)

// Embedder implements webcite.Embedder using Google Gemini embeddings.
type Embedder struct {
	client *genai.Client
	model  string
}

// NewEmbedder creates a new Embedder. An empty model selects
// DefaultEmbeddingModel.
func NewEmbedder(client *genai.Client, model string) *Embedder {
	if model == "" {
		model = DefaultEmbeddingModel
	}
	return &Embedder{client: client, model: model}
}

// Embed returns the embedding vector for a single text.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// EmbedBatch returns one embedding vector per input text, in order.
func (e *Embedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, webcite.Errorf(webcite.EINVALID, "at least one text required")
	}

	contents := make([]*genai.Content, 0, len(texts))
	for _, text := range texts {
		contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
	}

	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, nil)
	if err != nil {
		return nil, err
	}
	if result == nil || len(result.Embeddings) != len(texts) {
		return nil, webcite.Errorf(webcite.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(result), len(texts))
	}

	vectors := make([][]float32, 0, len(texts))
	for _, emb := range result.Embeddings {
		if emb == nil || len(emb.Values) == 0 {
			return nil, webcite.Errorf(webcite.EINTERNAL, "gemini returned empty embedding")
		}
		vectors = append(vectors, emb.Values)
	}
	return vectors, nil
}

func embeddingCount(r *genai.EmbedContentResponse) int {
	if r == nil {
		return 0
	}
	return len(r.Embeddings)
}
