package semantic

import (
	"context"
	"fmt"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb"
)

const defaultBatchSize = 32

// Indexer builds the cruise vector index from catalog records. It is used
// at data load time, not by agents.
type Indexer struct {
	engine     vectordb.Engine
	embedder   embedder.Embedder
	collection string
	batchSize  int
}

func NewIndexer(engine vectordb.Engine, emb embedder.Embedder, opts ...IndexerOption) *Indexer {
	ret := &Indexer{
		engine:     engine,
		embedder:   emb,
		collection: DefaultCollection,
		batchSize:  defaultBatchSize,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

type IndexerOption func(*Indexer)

func IndexerWithCollection(name string) IndexerOption {
	return func(i *Indexer) {
		i.collection = name
	}
}

func IndexerWithBatchSize(n int) IndexerOption {
	return func(i *Indexer) {
		if n > 0 {
			i.batchSize = n
		}
	}
}

// Index embeds cruise documents in batches and upserts them into the
// vector store. It returns the number of records indexed and accumulates
// embedding token usage into usage when non-nil.
func (i *Indexer) Index(ctx context.Context, cruises []catalog.Cruise, usage *components.LLMUsage) (int, error) {
	if usage == nil {
		usage = new(components.LLMUsage)
	}
	indexed := 0
	for start := 0; start < len(cruises); start += i.batchSize {
		end := min(start+i.batchSize, len(cruises))
		batch := cruises[start:end]
		docs := make([]string, 0, len(batch))
		for idx := range batch {
			docs = append(docs, batch[idx].Document())
		}
		embeddings, err := i.embedder.BatchEmbed(ctx, docs, usage)
		if err != nil {
			return indexed, fmt.Errorf("semantic: embed batch at %d: %w", start, err)
		}
		if len(embeddings) != len(batch) {
			return indexed, fmt.Errorf("semantic: embedder returned %d vectors for %d documents", len(embeddings), len(batch))
		}
		records := make([]vectordb.Record, 0, len(batch))
		for idx := range batch {
			emb := embeddings[idx]
			emb.Meta = batch[idx].Meta()
			records = append(records, vectordb.Record{
				ID:        batch[idx].CruiseID,
				Embedding: emb,
			})
		}
		if err := i.engine.Insert(ctx, i.collection, records...); err != nil {
			return indexed, fmt.Errorf("semantic: insert batch at %d: %w", start, err)
		}
		indexed += len(records)
	}
	return indexed, nil
}
