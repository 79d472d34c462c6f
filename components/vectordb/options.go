package vectordb

type Options struct {
	EngineType EngineType // Backend type (e.g., "milvus", "memory")
	TopK       int        // Default maximum number of results to return
	MinScore   float64    // Minimum similarity score threshold
	Dimension  int        // Vector dimension
}

// Option is a function type for configuring engine instances.
type Option func(*Options)

func WithEngine(engine EngineType) Option {
	return func(c *Options) {
		c.EngineType = engine
	}
}

// WithTopK sets the default maximum number of results to return when a
// search does not specify its own limit.
func WithTopK(k int) Option {
	return func(c *Options) {
		c.TopK = k
	}
}

// WithMinScore sets the minimum similarity score threshold.
// Results with scores below this threshold will be filtered out.
func WithMinScore(score float64) Option {
	return func(c *Options) {
		c.MinScore = score
	}
}

// WithDimension sets the dimension of vectors to be stored.
// This must match the dimension of the embedding model in use
// (BAAI/bge-small-en-v1.5: 384, text-embedding-3-small: 1536).
func WithDimension(dimension int) Option {
	return func(c *Options) {
		c.Dimension = dimension
	}
}
