package vectordb

import "context"

type EngineType string

const (
	Memory  EngineType = "memory"
	Chromem EngineType = "chromem"
	Milvus  EngineType = "milvus"
)

// Engine is a vector store backend. Scores returned from Search are
// similarities: higher means closer.
type Engine interface {
	Insert(ctx context.Context, collection string, records ...Record) error
	Search(ctx context.Context, vector []float64, opts ...SearchOption) ([]Record, error)
	Count(ctx context.Context, collection string) (int, error)
}
