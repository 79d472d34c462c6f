package booking

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb/engines/memory"
	"github.com/voyagekit/cruisedesk/tools/datasearch"
	"github.com/voyagekit/cruisedesk/tools/farecalc"
	"github.com/voyagekit/cruisedesk/tools/semantic"
)

type stubEmbedder struct{}

func (stubEmbedder) Provider() embedder.Provider { return embedder.ProviderHuggingFace }
func (stubEmbedder) Model() string               { return "test" }

func (stubEmbedder) Embed(_ context.Context, text string, out *embedder.Embedding, _ *components.LLMUsage) error {
	vec := []float64{0, 0}
	if strings.Contains(strings.ToLower(text), "caribbean") {
		vec[0] = 1
	} else {
		vec[1] = 1
	}
	out.Object = text
	out.Embedding = vec
	return nil
}

func (e stubEmbedder) BatchEmbed(ctx context.Context, parts []string, usage *components.LLMUsage) ([]embedder.Embedding, error) {
	ret := make([]embedder.Embedding, len(parts))
	for i, p := range parts {
		if err := e.Embed(ctx, p, &ret[i], usage); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func testToolset(t *testing.T) *Toolset {
	t.Helper()
	ctx := context.Background()
	store, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	cruises := []catalog.Cruise{
		{CruiseID: "CR001", ShipName: "Ocean Star", Destination: "Caribbean", Duration: 7, PricePerPerson: 1299, Description: "Caribbean island hopping."},
		{CruiseID: "CR002", ShipName: "Northern Light", Destination: "Alaska", Duration: 10, PricePerPerson: 899, Description: "Glacier expedition."},
	}
	require.NoError(t, store.LoadCruises(ctx, cruises))
	require.NoError(t, store.LoadPricing(ctx, []catalog.Pricing{{CruiseID: "CR001", StartingPrice: 999}}))

	engine := memory.New()
	_, err = semantic.NewIndexer(engine, stubEmbedder{}).Index(ctx, cruises, nil)
	require.NoError(t, err)
	return NewToolset(store, engine, stubEmbedder{}, "")
}

func TestSelectItinerary(t *testing.T) {
	ts := testToolset(t)
	ctx := context.Background()

	tool, input, err := ts.SelectItinerary(&ItineraryPlan{Tool: "sql_query", Query: "SELECT cruise_id FROM cruises"})
	require.NoError(t, err)
	out, err := tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 2, out.(*datasearch.QueryOutput).Count)

	tool, input, err = ts.SelectItinerary(&ItineraryPlan{Tool: "cruise_lookup", CruiseIDs: []string{"CR001"}})
	require.NoError(t, err)
	out, err = tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Ocean Star", out.(*datasearch.LookupOutput).Cruises[0].ShipName)

	_, _, err = ts.SelectItinerary(&ItineraryPlan{Tool: "sql_query"})
	assert.Error(t, err, "sql_query without query")
	_, _, err = ts.SelectItinerary(&ItineraryPlan{Tool: "teleport"})
	assert.Error(t, err, "unknown tool")
}

func TestSelectPricing(t *testing.T) {
	ts := testToolset(t)
	ctx := context.Background()

	tool, input, err := ts.SelectPricing(&PricingPlan{Tool: "pricing", CruiseID: "CR001"})
	require.NoError(t, err)
	out, err := tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 999.0, out.(*datasearch.PricingOutput).StartingPrice)

	tool, input, err = ts.SelectPricing(&PricingPlan{Tool: "fare_calc", Expression: "round2(base * 2)", Params: map[string]any{"base": 1299.0}})
	require.NoError(t, err)
	out, err = tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 2598.0, out.(*farecalc.Output).Result)

	_, _, err = ts.SelectPricing(&PricingPlan{Tool: "pricing"})
	assert.Error(t, err, "pricing without cruise ID")
}

func TestSelectSearchAndRecommendation(t *testing.T) {
	ts := testToolset(t)
	ctx := context.Background()

	tool, input, err := ts.SelectSearch(&SearchPlan{Tool: "semantic_search", Query: "caribbean beach escape", NResults: 1})
	require.NoError(t, err)
	out, err := tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	results := out.(*semantic.SearchOutput).Results
	require.Len(t, results, 1)
	assert.Equal(t, "CR001", results[0].CruiseID)

	tool, input, err = ts.SelectSearch(&SearchPlan{Tool: "cruise_lookup", CruiseIDs: []string{"CR002"}})
	require.NoError(t, err)
	out, err = tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, "Northern Light", out.(*datasearch.LookupOutput).Cruises[0].ShipName)

	tool, input, err = ts.SelectRecommendation(&RecommendationPlan{Tool: "find_similar", CruiseID: "CR001"})
	require.NoError(t, err)
	out, err = tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	for _, m := range out.(*semantic.SimilarOutput).Results {
		assert.NotEqual(t, "CR001", m.CruiseID)
	}

	tool, input, err = ts.SelectRecommendation(&RecommendationPlan{Tool: "stats"})
	require.NoError(t, err)
	out, err = tool.RunOrchestration(ctx, input)
	require.NoError(t, err)
	assert.EqualValues(t, 2, out.(*datasearch.StatsOutput).Stats.Cruises)

	_, _, err = ts.SelectSearch(&SearchPlan{Tool: "semantic_search"})
	assert.Error(t, err, "semantic_search without query")
	_, _, err = ts.SelectRecommendation(&RecommendationPlan{Tool: "find_similar"})
	assert.Error(t, err, "find_similar without cruise ID")
	_, _, err = ts.SelectRecommendation(&RecommendationPlan{Tool: "crystal_ball"})
	assert.Error(t, err, "unknown tool")
}
