package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/voyagekit/cruisedesk/components/vectordb"
)

// Engine is an in-process vector store. Records live in plain maps guarded
// by a mutex per collection, which is plenty for catalog-sized datasets and
// keeps tests free of external services.
type Engine struct {
	vectordb.Options

	mu          sync.RWMutex
	collections map[string]map[string]vectordb.Record
}

var _ vectordb.Engine = (*Engine)(nil)

func New(opts ...vectordb.Option) *Engine {
	e := &Engine{
		collections: make(map[string]map[string]vectordb.Record),
	}
	vectordb.WithEngine(vectordb.Memory)(&e.Options)
	for _, opt := range opts {
		opt(&e.Options)
	}
	return e
}

// Insert upserts records into the named collection, keyed by record ID.
func (e *Engine) Insert(ctx context.Context, collection string, records ...vectordb.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	coll, ok := e.collections[collection]
	if !ok {
		coll = make(map[string]vectordb.Record, len(records))
		e.collections[collection] = coll
	}
	for _, record := range records {
		if record.ID == "" {
			record.ID = record.Embedding.UUID()
		}
		coll[record.ID] = record
	}
	return nil
}

func (e *Engine) Search(ctx context.Context, vector []float64, opts ...vectordb.SearchOption) ([]vectordb.Record, error) {
	var options vectordb.SearchOptions
	for _, opt := range opts {
		opt(&options)
	}
	topK := options.TopK
	if topK <= 0 {
		topK = e.TopK
	}
	excluded := make(map[string]struct{}, len(options.ExcludeIDs))
	for _, id := range options.ExcludeIDs {
		excluded[id] = struct{}{}
	}

	e.mu.RLock()
	coll := e.collections[options.Collection]
	candidates := make([]vectordb.Record, 0, len(coll))
	for _, record := range coll {
		if _, skip := excluded[record.ID]; skip {
			continue
		}
		if !matchMeta(record, options.Meta) {
			continue
		}
		if options.Include != "" && !strings.Contains(record.Embedding.Object, options.Include) {
			continue
		}
		if options.Exclude != "" && strings.Contains(record.Embedding.Object, options.Exclude) {
			continue
		}
		record.Score = cosineSimilarity(vector, record.Embedding.Embedding)
		candidates = append(candidates, record)
	}
	e.mu.RUnlock()

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if topK > 0 && len(candidates) > topK {
		candidates = candidates[:topK]
	}
	return vectordb.ApplyMinScore(candidates, e.MinScore), nil
}

func (e *Engine) Count(ctx context.Context, collection string) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.collections[collection]), nil
}

func matchMeta(record vectordb.Record, meta map[string]string) bool {
	for k, v := range meta {
		if record.Embedding.Meta[k] != v {
			return false
		}
	}
	return true
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
