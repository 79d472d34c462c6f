package semantic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

const defaultSimilar = 3

// SimilarInput names a cruise to find alternatives for.
type SimilarInput struct {
	schema.Base
	// CruiseID the reference cruise.
	CruiseID string `json:"cruise_id" jsonschema:"title=cruise_id,description=The reference cruise." validate:"required"`
	// TopK number of similar cruises to return, defaults to 3.
	TopK int `json:"top_k,omitempty" jsonschema:"title=top_k,description=Number of similar cruises to return. Defaults to 3."`
}

func NewSimilarInput(cruiseID string) *SimilarInput {
	return &SimilarInput{CruiseID: cruiseID}
}

func (s SimilarInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SimilarOutput lists cruises closest to the reference, which is excluded.
type SimilarOutput struct {
	schema.Base
	// CruiseID the reference cruise.
	CruiseID string `json:"cruise_id" jsonschema:"title=cruise_id,description=The reference cruise."`
	// Results similar cruises best first, excluding the reference.
	Results []Match `json:"results,omitempty" jsonschema:"title=results,description=Similar cruises best first excluding the reference."`
}

func (s SimilarOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SimilarTool finds cruises close to a reference cruise in embedding space.
type SimilarTool struct {
	Config
	engine   vectordb.Engine
	embedder embedder.Embedder
	store    *catalog.Store
}

var _ tools.OrchestrationTool = (*SimilarTool)(nil)

func NewSimilarTool(engine vectordb.Engine, emb embedder.Embedder, store *catalog.Store, opts ...Option) *SimilarTool {
	ret := &SimilarTool{engine: engine, embedder: emb, store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("SimilarCruisesTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Finds cruises similar to a given cruise.")
	}
	if ret.collection == "" {
		ret.collection = DefaultCollection
	}
	return ret
}

func (t *SimilarTool) Run(ctx context.Context, input *SimilarInput) (output *SimilarOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	if input.CruiseID == "" {
		return nil, errors.New("semantic: cruise_id is required")
	}
	cruise, err := t.store.CruiseByID(ctx, input.CruiseID)
	if err != nil {
		return nil, err
	}
	if cruise == nil {
		return nil, fmt.Errorf("semantic: unknown cruise %s", input.CruiseID)
	}
	topK := input.TopK
	if topK <= 0 {
		topK = defaultSimilar
	}
	var (
		embedding embedder.Embedding
		usage     components.LLMUsage
	)
	if err := t.embedder.Embed(ctx, cruise.Document(), &embedding, &usage); err != nil {
		return nil, fmt.Errorf("semantic: embed reference: %w", err)
	}
	records, err := t.engine.Search(ctx, embedding.Embedding,
		vectordb.SearchWithCollection(t.collection),
		vectordb.SearchWithTopK(topK),
		vectordb.SearchWithExcludeIDs(input.CruiseID),
	)
	if err != nil {
		return nil, err
	}
	return &SimilarOutput{CruiseID: input.CruiseID, Results: toMatches(records)}, nil
}

func (t *SimilarTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[SimilarInput, SimilarOutput](ctx, t, input)
}

func (t *SimilarTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
