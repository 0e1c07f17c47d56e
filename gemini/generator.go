// Package gemini implements the generation and embedding capabilities of
// webcite using the Google Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/webcite"
	"google.golang.org/genai"
)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-3-flash-preview"

// Ensure Generator implements webcite.Generator at compile time.
var _ webcite.Generator = (*Generator)(nil)

// Generator implements webcite.Generator using Google Gemini.
type Generator struct {
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator. An empty model selects DefaultModel.
func NewGenerator(client *genai.Client, model string) *Generator {
	if model == "" {
		model = DefaultModel
	}
	return &Generator{client: client, model: model}
}

// Generate returns the model's response to the messages.
func (g *Generator) Generate(ctx context.Context, system string, msgs []webcite.Message) (string, error) {
	if len(msgs) == 0 {
		return "", webcite.Errorf(webcite.EINVALID, "at least one message required")
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, BuildContents(msgs), BuildConfig(system))
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", webcite.Errorf(webcite.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// An empty system instruction is omitted.
func BuildConfig(system string) *genai.GenerateContentConfig {
	temp := float32(0.4)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	return config
}

// BuildContents converts conversation messages to Gemini content, mapping
// the assistant role to Gemini's model role.
func BuildContents(msgs []webcite.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for _, m := range msgs {
		role := genai.RoleUser
		if m.Role == webcite.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		})
	}
	return contents
}
