package vectordb

import "github.com/voyagekit/cruisedesk/components/embedder"

type SearchOptions struct {
	Collection string
	TopK       int
	Meta       map[string]string
	Include    string
	Exclude    string
	ExcludeIDs []string
}

type SearchOption func(*SearchOptions)

func SearchWithCollection(name string) SearchOption {
	return func(r *SearchOptions) {
		r.Collection = name
	}
}

func SearchWithTopK(topK int) SearchOption {
	return func(r *SearchOptions) {
		r.TopK = topK
	}
}

// SearchWithMeta adds metadata equality filters. A nil or empty map leaves
// the search unfiltered; backends never receive an empty where clause.
func SearchWithMeta(meta map[string]string) SearchOption {
	return func(r *SearchOptions) {
		if len(meta) == 0 {
			return
		}
		r.Meta = meta
	}
}

func SearchWithInclude(v string) SearchOption {
	return func(r *SearchOptions) {
		r.Include = v
	}
}

func SearchWithExclude(v string) SearchOption {
	return func(r *SearchOptions) {
		r.Exclude = v
	}
}

// SearchWithExcludeIDs drops specific record IDs from the result set. Used
// by find-similar style lookups to remove the reference document.
func SearchWithExcludeIDs(ids ...string) SearchOption {
	return func(r *SearchOptions) {
		r.ExcludeIDs = ids
	}
}

// Record represents a single result from a vector similarity search.
type Record struct {
	// ID is the identifier for the result
	ID string
	// Score is the similarity score for the result, higher is closer
	Score float64
	// Embedding holds the document text, vector and metadata
	Embedding embedder.Embedding
}
