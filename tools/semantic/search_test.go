package semantic

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb"
	"github.com/voyagekit/cruisedesk/components/vectordb/engines/memory"
)

// keywordEmbedder maps texts to fixed vectors along keyword axes so
// similarity is deterministic without a model.
type keywordEmbedder struct{}

var axes = []string{"caribbean", "alaska", "mediterranean"}

func (keywordEmbedder) Provider() embedder.Provider { return embedder.ProviderHuggingFace }
func (keywordEmbedder) Model() string               { return "test" }

func (keywordEmbedder) Embed(_ context.Context, text string, out *embedder.Embedding, _ *components.LLMUsage) error {
	vec := make([]float64, len(axes))
	lowered := strings.ToLower(text)
	for i, axis := range axes {
		if strings.Contains(lowered, axis) {
			vec[i] = 1
		}
	}
	out.Object = text
	out.Embedding = vec
	return nil
}

func (k keywordEmbedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]embedder.Embedding, error) {
	ret := make([]embedder.Embedding, len(parts))
	for i, p := range parts {
		if err := k.Embed(ctx, p, &ret[i], usage); err != nil {
			return nil, err
		}
		ret[i].Index = i
	}
	return ret, nil
}

func testCruises() []catalog.Cruise {
	return []catalog.Cruise{
		{CruiseID: "CR001", ShipName: "Ocean Star", Destination: "Caribbean", DepartureDate: "2026-10-05", Duration: 7, Description: "Caribbean island hopping."},
		{CruiseID: "CR002", ShipName: "Northern Light", Destination: "Alaska", DepartureDate: "2026-06-12", Duration: 10, Description: "Alaska glacier expedition."},
		{CruiseID: "CR003", ShipName: "Sun Palace", Destination: "Caribbean", DepartureDate: "2026-11-20", Duration: 5, Description: "Caribbean beaches and reefs."},
	}
}

func testIndex(t *testing.T) (*memory.Engine, *catalog.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	cruises := testCruises()
	require.NoError(t, store.LoadCruises(ctx, cruises))

	engine := memory.New(vectordb.WithTopK(10))
	indexer := NewIndexer(engine, keywordEmbedder{}, IndexerWithBatchSize(2))
	n, err := indexer.Index(ctx, cruises, nil)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	return engine, store
}

func TestSearchTool(t *testing.T) {
	engine, _ := testIndex(t)
	tool := NewSearchTool(engine, keywordEmbedder{})
	ctx := context.Background()

	out, err := tool.Run(ctx, &SearchInput{Query: "warm caribbean beach cruise", NResults: 2})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)
	for _, m := range out.Results {
		assert.Equal(t, "Caribbean", m.Meta["destination"])
	}

	_, err = tool.Run(ctx, &SearchInput{})
	assert.Error(t, err)
}

func TestSearchToolFilters(t *testing.T) {
	engine, _ := testIndex(t)
	tool := NewSearchTool(engine, keywordEmbedder{})

	out, err := tool.Run(context.Background(), &SearchInput{
		Query:   "caribbean cruise",
		Filters: map[string]string{"destination": "Alaska"},
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 1)
	assert.Equal(t, "CR002", out.Results[0].CruiseID)

	// empty filters behave like no filters
	out, err = tool.Run(context.Background(), &SearchInput{
		Query:   "caribbean cruise",
		Filters: map[string]string{},
	})
	require.NoError(t, err)
	assert.Len(t, out.Results, 3)
}

func TestSimilarToolExcludesSelf(t *testing.T) {
	engine, store := testIndex(t)
	tool := NewSimilarTool(engine, keywordEmbedder{}, store)
	ctx := context.Background()

	out, err := tool.Run(ctx, NewSimilarInput("CR001"))
	require.NoError(t, err)
	require.NotEmpty(t, out.Results)
	for _, m := range out.Results {
		assert.NotEqual(t, "CR001", m.CruiseID)
	}
	assert.Equal(t, "CR003", out.Results[0].CruiseID, "other Caribbean cruise ranks first")

	_, err = tool.Run(ctx, NewSimilarInput("CR404"))
	assert.Error(t, err)
}
