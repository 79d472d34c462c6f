package datasearch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/tools"
)

func testStore(t *testing.T) *catalog.Store {
	t.Helper()
	store, err := catalog.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.LoadCruises(context.Background(), []catalog.Cruise{
		{CruiseID: "CR001", ShipName: "Ocean Star", Destination: "Caribbean", Duration: 7, PricePerPerson: 1299},
		{CruiseID: "CR002", ShipName: "Northern Light", Destination: "Alaska", Duration: 10, PricePerPerson: 899},
	}))
	require.NoError(t, store.LoadPricing(context.Background(), []catalog.Pricing{
		{CruiseID: "CR001", StartingPrice: 999},
	}))
	return store
}

func TestQueryTool(t *testing.T) {
	tool := NewQueryTool(testStore(t))
	ctx := context.Background()

	out, err := tool.Run(ctx, NewQueryInput(`SELECT cruise_id FROM cruises WHERE duration >= 10`))
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "CR002", out.Results[0]["cruise_id"])

	_, err = tool.Run(ctx, NewQueryInput(`DELETE FROM cruises`))
	assert.Error(t, err)
}

func TestLookupToolManyPrecedence(t *testing.T) {
	tool := NewLookupTool(testStore(t))
	ctx := context.Background()

	out, err := tool.Run(ctx, &LookupInput{
		CruiseID:  "CR001",
		CruiseIDs: []string{"CR002", "CR404"},
	})
	require.NoError(t, err)
	require.Len(t, out.Cruises, 1)
	assert.Equal(t, "CR002", out.Cruises[0].CruiseID, "cruise_ids wins over cruise_id")
	assert.Equal(t, []string{"CR404"}, out.Missing)

	_, err = tool.Run(ctx, &LookupInput{})
	assert.Error(t, err)
}

func TestPricingTool(t *testing.T) {
	tool := NewPricingTool(testStore(t))
	ctx := context.Background()

	out, err := tool.Run(ctx, NewPricingInput("CR001"))
	require.NoError(t, err)
	assert.True(t, out.Found)
	assert.Equal(t, 999.0, out.StartingPrice)

	out, err = tool.Run(ctx, NewPricingInput("CR002"))
	require.NoError(t, err)
	assert.False(t, out.Found, "cruise without pricing row")
}

func TestPriceRangeTool(t *testing.T) {
	tool := NewPriceRangeTool(testStore(t))
	out, err := tool.Run(context.Background(), NewPriceRangeInput(0, 1000))
	require.NoError(t, err)
	require.Len(t, out.Cruises, 1)
	assert.Equal(t, "CR002", out.Cruises[0].CruiseID)
}

func TestListAndStatsTools(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	list, err := NewListTool(store).Run(ctx, &ListInput{Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	stats, err := NewStatsTool(store).Run(ctx, &StatsInput{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Stats.Cruises)
	assert.EqualValues(t, 1, stats.Stats.PricingRows)
}

func TestHooksFire(t *testing.T) {
	var started, ended bool
	var failed bool
	tool := NewQueryTool(testStore(t),
		tools.WithStartHook(func(context.Context, tools.AnonymousTool, any) { started = true }),
		tools.WithEndHook(func(context.Context, tools.AnonymousTool, any, any) { ended = true }),
		tools.WithErrorHook(func(context.Context, tools.AnonymousTool, any, error) { failed = true }),
	)
	ctx := context.Background()
	_, err := tool.Run(ctx, NewQueryInput(`SELECT 1`))
	require.NoError(t, err)
	assert.True(t, started)
	assert.True(t, ended)
	assert.False(t, failed)

	_, err = tool.Run(ctx, NewQueryInput(`DROP TABLE cruises`))
	require.Error(t, err)
	assert.True(t, failed)
}

func TestRunOrchestration(t *testing.T) {
	tool := NewQueryTool(testStore(t))
	out, err := tool.RunOrchestration(context.Background(), NewQueryInput(`SELECT COUNT(*) AS n FROM cruises`))
	require.NoError(t, err)
	result, ok := out.(*QueryOutput)
	require.True(t, ok)
	assert.Equal(t, 1, result.Count)

	_, err = tool.RunOrchestration(context.Background(), "not a schema")
	assert.Error(t, err)
}
