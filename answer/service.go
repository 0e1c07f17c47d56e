// Package answer provides citation-grounded question answering over
// ingested content. It coordinates query reformulation, similarity
// retrieval, and answer synthesis.
package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/webcite"
)

// reformulatePrompt turns a conversation into a standalone search query.
const reformulatePrompt = "Given the above conversation, generate a focused and specific search query to find the most relevant information. Avoid broad or generic queries. Respond with the search query only."

// answerSystemPrompt is the synthesis contract. The sentinel in
// instruction 2 must match webcite.NoInformationAnswer exactly; citation
// resolution depends on it.
const answerSystemPrompt = `You are a helpful assistant that answers questions based STRICTLY on the provided context.

Instructions for providing answers:
1. Only answer what is explicitly supported by the context
2. If the context doesn't contain information to answer the question, respond with "I couldn't find any information in the provided context to answer your question."
3. Do not make assumptions or include external knowledge
4. If the context only partially answers the question, only provide what is supported by the context and mention that only partial information was found
5. Use citation numbers [1] ONLY when directly quoting or referencing specific information from a source
6. Use each citation number only ONCE in your response - do not repeat citations
7. Make sure each citation actually corresponds to information from that source
8. If multiple sources contain the same information, use only the most relevant source

Context:
%s`

var _ webcite.AnswerService = (*Service)(nil)

// Service answers questions from ingested content. Each request is
// self-contained; conversation history is supplied by the caller.
type Service struct {
	Generator webcite.Generator
	Embedder  webcite.Embedder
	Store     webcite.ChunkStore

	// Limit and MinScore configure retrieval. Zero values fall back to
	// the package defaults.
	Limit    int
	MinScore float32
}

// Answer reformulates the query in light of history, retrieves supporting
// chunks, and generates a citation-grounded answer.
func (s *Service) Answer(ctx context.Context, query string, history []webcite.Turn) (*webcite.Answer, error) {
	if strings.TrimSpace(query) == "" {
		return nil, webcite.Errorf(webcite.EINVALID, "query required")
	}

	reformulated, err := s.Reformulate(ctx, query, history)
	if err != nil {
		return nil, err
	}

	retrieved, raw, err := s.Synthesize(ctx, reformulated, history)
	if err != nil {
		return nil, err
	}

	response, sources := webcite.ResolveCitations(raw, retrieved)

	return &webcite.Answer{
		Response: response,
		Sources:  sources,
	}, nil
}

// Reformulate rewrites the latest query as a standalone search query using
// the conversation history. With no history the query is already
// standalone and is returned verbatim without a generation call.
func (s *Service) Reformulate(ctx context.Context, query string, history []webcite.Turn) (string, error) {
	if len(history) == 0 {
		return query, nil
	}

	msgs := make([]webcite.Message, 0, len(history)+2)
	for _, turn := range history {
		msgs = append(msgs, webcite.Message{Role: turn.Role, Content: turn.Content})
	}
	msgs = append(msgs,
		webcite.Message{Role: webcite.RoleUser, Content: query},
		webcite.Message{Role: webcite.RoleUser, Content: reformulatePrompt},
	)

	reformulated, err := s.Generator.Generate(ctx, "", msgs)
	if err != nil {
		return "", err
	}

	reformulated = strings.TrimSpace(reformulated)
	if reformulated == "" {
		return query, nil
	}
	return reformulated, nil
}

// Synthesize embeds the query, retrieves similar chunks, and generates a
// raw answer against the numbered context. It returns the retrieved chunks
// alongside the answer so the caller can resolve citation markers; when
// nothing scores above the retrieval threshold it returns the no-information
// sentinel without a generation call.
func (s *Service) Synthesize(ctx context.Context, query string, history []webcite.Turn) ([]webcite.SearchResult, string, error) {
	embedding, err := s.Embedder.Embed(ctx, query)
	if err != nil {
		return nil, "", err
	}

	limit := s.Limit
	if limit <= 0 {
		limit = webcite.DefaultSearchLimit
	}
	minScore := s.MinScore
	if minScore <= 0 {
		minScore = webcite.DefaultMinScore
	}

	retrieved, err := s.Store.Search(ctx, embedding, webcite.SearchOptions{
		Limit:    limit,
		MinScore: minScore,
	})
	if err != nil {
		return nil, "", err
	}

	if len(retrieved) == 0 {
		return nil, webcite.NoInformationAnswer, nil
	}

	system := fmt.Sprintf(answerSystemPrompt, BuildContext(retrieved))

	msgs := make([]webcite.Message, 0, len(history)+1)
	for _, turn := range history {
		msgs = append(msgs, webcite.Message{Role: turn.Role, Content: turn.Content})
	}
	msgs = append(msgs, webcite.Message{Role: webcite.RoleUser, Content: query})

	raw, err := s.Generator.Generate(ctx, system, msgs)
	if err != nil {
		return nil, "", err
	}

	return retrieved, raw, nil
}

// BuildContext renders retrieved chunks as a numbered context block. The
// 1-based item numbers are the citation numbers the synthesis contract
// refers to.
func BuildContext(retrieved []webcite.SearchResult) string {
	var sb strings.Builder
	for i, r := range retrieved {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "[%d] %s\n%s", i+1, r.Chunk.SourceURL, r.Chunk.Content)
	}
	return sb.String()
}
