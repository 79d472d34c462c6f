package embedder

import (
	"context"

	"github.com/voyagekit/cruisedesk/components"
)

// Embedder turns text into vector embeddings through a provider API.
type Embedder interface {
	Provider() Provider
	Model() string
	Embed(context.Context, string, *Embedding, *components.LLMUsage) error
	BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]Embedding, error)
}
