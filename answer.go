package webcite

import (
	"context"
)

// Role identifies the author of a conversation turn.
type Role string

// Conversation roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one turn of a conversation. The caller supplies the full history
// with each request; the core holds no session state across requests.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Answer is a generated answer together with the deduplicated, ordered list
// of source URLs its citations resolved to.
type Answer struct {
	Response string   `json:"response"`
	Sources  []string `json:"sources"`
}

// AnswerService answers natural-language questions from ingested content.
type AnswerService interface {
	// Answer reformulates the query in light of history, retrieves
	// supporting chunks, and generates a citation-grounded answer.
	Answer(ctx context.Context, query string, history []Turn) (*Answer, error)
}

// Message is one message in a generation request.
type Message struct {
	Role    Role
	Content string
}

// Generator produces text from a chat-style message sequence. Used by both
// query reformulation and answer synthesis.
type Generator interface {
	// Generate returns the model's response to the messages. The system
	// instruction may be empty.
	Generate(ctx context.Context, system string, msgs []Message) (string, error)
}

// Embedder converts text into a vector representation for similarity search.
type Embedder interface {
	// Embed returns the embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch returns one embedding vector per input text, in order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
