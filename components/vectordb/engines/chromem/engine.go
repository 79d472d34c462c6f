package chromem

import (
	"context"

	"github.com/philippgille/chromem-go"

	"github.com/voyagekit/cruisedesk/components/vectordb"
)

type Engine struct {
	db *chromem.DB
	vectordb.Options
}

var _ vectordb.Engine = (*Engine)(nil)

func New(db *chromem.DB, opts ...vectordb.Option) *Engine {
	ret := &Engine{
		db: db,
	}
	vectordb.WithEngine(vectordb.Chromem)(&ret.Options)
	for _, opt := range opts {
		opt(&ret.Options)
	}
	return ret
}

func (e *Engine) Collection(_ context.Context, name string) (*chromem.Collection, error) {
	return e.db.GetOrCreateCollection(name, nil, nil)
}

func (e *Engine) Insert(ctx context.Context, collectionName string, records ...vectordb.Record) error {
	col, err := e.Collection(ctx, collectionName)
	if err != nil {
		return err
	}
	for _, record := range records {
		var doc chromem.Document
		recordToDocument(&record, &doc)
		if err := col.AddDocument(ctx, doc); err != nil {
			return err
		}
	}
	return nil
}

// Search performs vector similarity search on a collection.
func (e *Engine) Search(ctx context.Context, vectors []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var option vectordb.SearchOptions
	for _, opt := range opts {
		opt(&option)
	}
	col, err := e.Collection(ctx, option.Collection)
	if err != nil {
		return nil, err
	}
	query := vectordb.Float32s(vectors)
	var whereDocument map[string]string
	if option.Include != "" || option.Exclude != "" {
		whereDocument = make(map[string]string, 2)
		if option.Include != "" {
			whereDocument["$contains"] = option.Include
		}
		if option.Exclude != "" {
			whereDocument["$not_contains"] = option.Exclude
		}
	}
	topK := option.TopK
	if topK <= 0 {
		topK = e.TopK
	}
	// chromem rejects nResults larger than the collection; clamp, and over
	// fetch when IDs will be dropped afterwards.
	fetch := topK + len(option.ExcludeIDs)
	if count := col.Count(); fetch > count {
		fetch = count
	}
	if fetch == 0 {
		return nil, nil
	}
	results, err := col.QueryEmbedding(ctx, query, fetch, option.Meta, whereDocument)
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]struct{}, len(option.ExcludeIDs))
	for _, id := range option.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	searchResults := make([]vectordb.Record, 0, len(results))
	for _, result := range results {
		if _, skip := excluded[result.ID]; skip {
			continue
		}
		var rec vectordb.Record
		resultToRecord(&result, &rec)
		searchResults = append(searchResults, rec)
	}
	if topK > 0 && len(searchResults) > topK {
		searchResults = searchResults[:topK]
	}
	return vectordb.ApplyMinScore(searchResults, e.MinScore), nil
}

func (e *Engine) Count(ctx context.Context, collection string) (int, error) {
	col, err := e.Collection(ctx, collection)
	if err != nil {
		return 0, err
	}
	return col.Count(), nil
}

func resultToRecord(res *chromem.Result, record *vectordb.Record) {
	record.ID = res.ID
	record.Score = float64(res.Similarity)
	record.Embedding.Object = res.Content
	record.Embedding.Embedding = vectordb.Float64s(res.Embedding)
	record.Embedding.Meta = res.Metadata
}

func recordToDocument(record *vectordb.Record, doc *chromem.Document) {
	if record.ID == "" {
		record.ID = record.Embedding.UUID()
	}
	doc.ID = record.ID
	doc.Content = record.Embedding.Object
	doc.Metadata = record.Embedding.Meta
	doc.Embedding = vectordb.Float32s(record.Embedding.Embedding)
}
