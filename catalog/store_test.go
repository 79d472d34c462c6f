package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.LoadCruises(context.Background(), []Cruise{
		{
			CruiseID:       "CR001",
			ShipName:       "Ocean Star",
			DeparturePort:  "Miami",
			DepartureDate:  "2026-10-05",
			Duration:       7,
			Destination:    "Caribbean",
			PortsOfCall:    StringList{"Nassau", "Cozumel"},
			CabinType:      "Balcony",
			PricePerPerson: 1299,
			TotalPrice:     2598,
			Availability:   "Available",
			Amenities:      StringList{"Pool", "Spa"},
			Description:    "Island hopping with snorkeling excursions.",
		},
		{
			CruiseID:       "CR002",
			ShipName:       "Northern Light",
			DeparturePort:  "Seattle",
			DepartureDate:  "2026-06-12",
			Duration:       10,
			Destination:    "Alaska",
			PortsOfCall:    StringList{"Juneau", "Skagway"},
			CabinType:      "Interior",
			PricePerPerson: 899,
			TotalPrice:     1798,
			Availability:   "Limited",
			Description:    "Glacier viewing and wildlife expedition.",
		},
	}))
	require.NoError(t, store.LoadPricing(context.Background(), []Pricing{
		{CruiseID: "CR001", StartingPrice: 999},
		{CruiseID: "CR002", StartingPrice: 749},
	}))
	return store
}

func TestExecuteQuery(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	rows, err := store.ExecuteQuery(ctx, `SELECT cruise_id, ship_name FROM cruises WHERE destination = 'Alaska'`)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "CR002", rows[0]["cruise_id"])
	assert.Equal(t, "Northern Light", rows[0]["ship_name"])

	rows, err = store.ExecuteQuery(ctx, `SELECT * FROM cruises WHERE destination = 'Antarctica'`)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestExecuteQueryRejectsWrites(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	for _, query := range []string{
		`DELETE FROM cruises`,
		`DROP TABLE cruises`,
		`INSERT INTO cruises (cruise_id) VALUES ('x')`,
		`SELECT 1; DELETE FROM cruises`,
		`PRAGMA writable_schema = 1`,
		`UPDATE cruises SET price_per_person = 0`,
		``,
	} {
		_, err := store.ExecuteQuery(ctx, query)
		assert.Error(t, err, "query should be rejected: %s", query)
	}
	// data intact after rejected statements
	cruises, err := store.Cruises(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, cruises, 2)
}

func TestGuardQueryAllowsReadOnly(t *testing.T) {
	for _, query := range []string{
		`SELECT * FROM cruises`,
		`select cruise_id from cruises limit 5;`,
		`WITH cheap AS (SELECT * FROM cruises WHERE price_per_person < 1000) SELECT * FROM cheap`,
		"-- leading comment\nSELECT 1",
		// keywords inside string literals are data, not statements
		`SELECT * FROM cruises WHERE description LIKE '%create memories%'`,
		`SELECT * FROM cruises WHERE ship_name = 'Drop Anchor; Update'`,
	} {
		assert.NoError(t, GuardQuery(query), query)
	}
}

func TestCruiseByID(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	c, err := store.CruiseByID(ctx, "CR001")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "Ocean Star", c.ShipName)
	assert.Equal(t, StringList{"Nassau", "Cozumel"}, c.PortsOfCall)

	c, err = store.CruiseByID(ctx, "CR999")
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestPriceRange(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	cruises, err := store.PriceRange(ctx, 0, 1000)
	require.NoError(t, err)
	require.Len(t, cruises, 1)
	assert.Equal(t, "CR002", cruises[0].CruiseID)

	cruises, err = store.PriceRange(ctx, 500, 2000)
	require.NoError(t, err)
	require.Len(t, cruises, 2)
	assert.Equal(t, "CR002", cruises[0].CruiseID, "cheapest first")

	_, err = store.PriceRange(ctx, 2000, 1000)
	assert.Error(t, err)
}

func TestPricing(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	p, err := store.Pricing(ctx, "CR002")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, 749.0, p.StartingPrice)

	p, err = store.Pricing(ctx, "CR999")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStats(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	_, err := store.ExecuteQuery(ctx, `SELECT COUNT(*) FROM cruises`)
	require.NoError(t, err)
	_, err = store.ExecuteQuery(ctx, `DROP TABLE cruises`)
	require.Error(t, err)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Cruises)
	assert.EqualValues(t, 2, stats.PricingRows)
	assert.EqualValues(t, 2, stats.Destinations)
	assert.Equal(t, 899.0, stats.MinPrice)
	assert.Equal(t, 1299.0, stats.MaxPrice)
	assert.Equal(t, 1099.0, stats.AvgPrice)
	assert.EqualValues(t, 1, stats.Queries)
	assert.EqualValues(t, 1, stats.QueryErrors)
}
