package huggingface

import (
	"context"

	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
)

const (
	// DefaultEmbedderModel matches the model used to build the cruise index.
	DefaultEmbedderModel = "BAAI/bge-small-en-v1.5"
)

type Embedder struct {
	*Client

	embedder.Options
}

var _ embedder.Embedder = (*Embedder)(nil)

func (p *Embedder) SetClient(clt *Client) {
	p.Client = clt
}

func New(client *Client, opts ...embedder.Option) *Embedder {
	i := &Embedder{
		Client: client,
	}
	embedder.WithProvider(embedder.ProviderHuggingFace)(&i.Options)
	embedder.WithModel(DefaultEmbedderModel)(&i.Options)
	for _, opt := range opts {
		opt(&i.Options)
	}
	return i
}

func (p *Embedder) Embed(ctx context.Context, text string, embedding *embedder.Embedding, usage *components.LLMUsage) error {
	isTrue := true
	req := EmbeddingRequest{
		Inputs: []string{text},
		Options: options{
			WaitForModel: &isTrue,
		},
		Model: p.Model(),
	}
	resp, err := p.CreateEmbeddings(ctx, &req)
	if err != nil {
		return err
	}
	if len(resp) == 0 {
		return nil
	}
	embedding.Object = text
	embedding.Embedding = resp[0]
	embedding.Index = 0
	return nil
}

func (p *Embedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]embedder.Embedding, error) {
	isTrue := true
	req := EmbeddingRequest{
		Inputs: parts,
		Options: options{
			WaitForModel: &isTrue,
		},
		Model: p.Model(),
	}
	resp, err := p.CreateEmbeddings(ctx, &req)
	if err != nil {
		return nil, err
	}
	ret := make([]embedder.Embedding, 0, len(resp))
	for idx, v := range resp {
		ret = append(ret, embedder.Embedding{
			Object:    parts[idx],
			Embedding: v,
			Index:     idx,
		})
	}
	return ret, nil
}
