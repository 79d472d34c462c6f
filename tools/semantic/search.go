// Package semantic provides natural language search over the cruise vector
// index plus similarity lookups between cruises.
package semantic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

const defaultResults = 5

// SearchInput is a natural language query over cruise descriptions.
type SearchInput struct {
	schema.Base
	// Query natural language description of the desired cruise.
	Query string `json:"query" jsonschema:"title=query,description=Natural language description of the desired cruise." validate:"required"`
	// NResults number of matches to return, defaults to 5.
	NResults int `json:"n_results,omitempty" jsonschema:"title=n_results,description=Number of matches to return. Defaults to 5."`
	// Filters optional metadata equality filters such as destination or cabin_type.
	Filters map[string]string `json:"filters,omitempty" jsonschema:"title=filters,description=Optional metadata equality filters such as destination or cabin_type."`
}

func NewSearchInput(query string) *SearchInput {
	return &SearchInput{Query: query}
}

func (s SearchInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Match is one scored hit from the vector index.
type Match struct {
	schema.Base
	// CruiseID identifier of the matched cruise.
	CruiseID string `json:"cruise_id" jsonschema:"title=cruise_id,description=Identifier of the matched cruise."`
	// Score similarity score, higher is closer.
	Score float64 `json:"score" jsonschema:"title=score,description=Similarity score. Higher is closer."`
	// Document the indexed cruise text.
	Document string `json:"document,omitempty" jsonschema:"title=document,description=The indexed cruise text."`
	// Meta metadata stored alongside the document.
	Meta map[string]string `json:"meta,omitempty" jsonschema:"title=meta,description=Metadata stored alongside the document."`
}

func (s Match) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchOutput lists matches best first.
type SearchOutput struct {
	schema.Base
	// Results matches ordered best first.
	Results []Match `json:"results,omitempty" jsonschema:"title=results,description=Matches ordered best first."`
}

func (s SearchOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchTool embeds the query and searches the cruise index.
type SearchTool struct {
	Config
	engine   vectordb.Engine
	embedder embedder.Embedder
}

var _ tools.OrchestrationTool = (*SearchTool)(nil)

func NewSearchTool(engine vectordb.Engine, emb embedder.Embedder, opts ...Option) *SearchTool {
	ret := &SearchTool{engine: engine, embedder: emb}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("SemanticSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Finds cruises matching a natural language description.")
	}
	if ret.collection == "" {
		ret.collection = DefaultCollection
	}
	return ret
}

func (t *SearchTool) Run(ctx context.Context, input *SearchInput) (output *SearchOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	if input.Query == "" {
		return nil, errors.New("semantic: query is required")
	}
	topK := input.NResults
	if topK <= 0 {
		topK = defaultResults
	}
	var (
		embedding embedder.Embedding
		usage     components.LLMUsage
	)
	if err := t.embedder.Embed(ctx, input.Query, &embedding, &usage); err != nil {
		return nil, fmt.Errorf("semantic: embed query: %w", err)
	}
	records, err := t.engine.Search(ctx, embedding.Embedding,
		vectordb.SearchWithCollection(t.collection),
		vectordb.SearchWithTopK(topK),
		vectordb.SearchWithMeta(input.Filters),
	)
	if err != nil {
		return nil, err
	}
	return &SearchOutput{Results: toMatches(records)}, nil
}

func (t *SearchTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[SearchInput, SearchOutput](ctx, t, input)
}

func (t *SearchTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}

func toMatches(records []vectordb.Record) []Match {
	matches := make([]Match, 0, len(records))
	for _, r := range records {
		matches = append(matches, Match{
			CruiseID: r.ID,
			Score:    r.Score,
			Document: r.Embedding.Object,
			Meta:     r.Embedding.Meta,
		})
	}
	return matches
}
