package cohere

import (
	"context"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereClient "github.com/cohere-ai/cohere-go/v2/client"

	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
)

type Embedder struct {
	*cohereClient.Client

	embedder.Options
}

var _ embedder.Embedder = (*Embedder)(nil)

func (p *Embedder) SetClient(clt *cohereClient.Client) {
	p.Client = clt
}

func New(client *cohereClient.Client, opts ...embedder.Option) *Embedder {
	i := &Embedder{
		Client: client,
	}
	embedder.WithProvider(embedder.ProviderCohere)(&i.Options)
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

func (p *Embedder) Embed(ctx context.Context, text string, embedding *embedder.Embedding, usage *components.LLMUsage) error {
	model := p.Model()
	req := cohere.EmbedRequest{
		Texts: []string{text},
		Model: &model,
	}
	resp, err := p.Client.Embed(ctx, &req)
	if err != nil {
		return err
	}
	respV := resp.GetEmbeddingsFloats()
	mergeUsage(respV, usage)
	if len(respV.Embeddings) == 0 {
		return nil
	}
	embedding.Object = respV.Texts[0]
	embedding.Embedding = respV.Embeddings[0]
	embedding.Index = 0
	return nil
}

func (p *Embedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]embedder.Embedding, error) {
	model := p.Model()
	req := cohere.EmbedRequest{
		Texts: parts,
		Model: &model,
	}
	resp, err := p.Client.Embed(ctx, &req)
	if err != nil {
		return nil, err
	}
	respV := resp.GetEmbeddingsFloats()
	mergeUsage(respV, usage)
	ret := make([]embedder.Embedding, 0, len(respV.Embeddings))
	for idx, v := range respV.Embeddings {
		ret = append(ret, embedder.Embedding{
			Object:    respV.Texts[idx],
			Embedding: v,
			Index:     idx,
		})
	}
	return ret, nil
}

// mergeUsage accumulates token counts, callers reuse one usage across
// batches.
func mergeUsage(resp *cohere.EmbedFloatsResponse, usage *components.LLMUsage) {
	if usage == nil || resp == nil || resp.Meta == nil || resp.Meta.Tokens == nil {
		return
	}
	if v := resp.Meta.Tokens.InputTokens; v != nil {
		usage.InputTokens += int(*v)
	}
	if v := resp.Meta.Tokens.OutputTokens; v != nil {
		usage.OutputTokens += int(*v)
	}
}
