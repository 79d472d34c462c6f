package openai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"

	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
)

const DefaultEmbedderModel = string(openai.SmallEmbedding3)

type Embedder struct {
	clt *openai.Client

	embedder.Options
}

var _ embedder.Embedder = (*Embedder)(nil)

func (p *Embedder) SetClient(clt *openai.Client) {
	p.clt = clt
}

func New(client *openai.Client, opts ...embedder.Option) *Embedder {
	i := &Embedder{
		clt: client,
	}
	embedder.WithProvider(embedder.ProviderOpenAI)(&i.Options)
	embedder.WithModel(DefaultEmbedderModel)(&i.Options)
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

func (p *Embedder) Embed(ctx context.Context, text string, embedding *embedder.Embedding, usage *components.LLMUsage) error {
	req := openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(p.Model()),
	}
	resp, err := p.clt.CreateEmbeddings(ctx, req)
	if err != nil {
		return err
	}
	if usage != nil {
		// callers reuse one usage across batches
		usage.InputTokens += resp.Usage.PromptTokens
	}
	if len(resp.Data) == 0 {
		return nil
	}
	ret := resp.Data[0]
	embedding.Object = text
	embedding.Embedding = make([]float64, 0, len(ret.Embedding))
	for _, v := range ret.Embedding {
		embedding.Embedding = append(embedding.Embedding, float64(v))
	}
	embedding.Index = 0
	return nil
}

func (p *Embedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]embedder.Embedding, error) {
	req := openai.EmbeddingRequestStrings{
		Input: parts,
		Model: openai.EmbeddingModel(p.Model()),
	}
	resp, err := p.clt.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, err
	}
	if usage != nil {
		// callers reuse one usage across batches
		usage.InputTokens += resp.Usage.PromptTokens
	}
	ret := make([]embedder.Embedding, 0, len(resp.Data))
	for _, v := range resp.Data {
		embeddings := make([]float64, 0, len(v.Embedding))
		for _, e := range v.Embedding {
			embeddings = append(embeddings, float64(e))
		}
		ret = append(ret, embedder.Embedding{
			Object:    parts[v.Index],
			Embedding: embeddings,
			Index:     v.Index,
		})
	}
	return ret, nil
}
