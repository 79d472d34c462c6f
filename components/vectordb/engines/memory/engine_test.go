package memory

import (
	"context"
	"testing"

	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb"
)

func seedRecords() []vectordb.Record {
	return []vectordb.Record{
		{
			ID: "cruise-001",
			Embedding: embedder.Embedding{
				Object:    "Caribbean island hopping with snorkeling and beach days",
				Embedding: []float64{1, 0, 0},
				Meta:      map[string]string{"destination": "Caribbean"},
			},
		},
		{
			ID: "cruise-002",
			Embedding: embedder.Embedding{
				Object:    "Alaska glacier viewing and wildlife expedition",
				Embedding: []float64{0, 1, 0},
				Meta:      map[string]string{"destination": "Alaska"},
			},
		},
		{
			ID: "cruise-003",
			Embedding: embedder.Embedding{
				Object:    "Caribbean luxury cruise with spa and fine dining",
				Embedding: []float64{0.9, 0.1, 0},
				Meta:      map[string]string{"destination": "Caribbean"},
			},
		},
	}
}

func TestSearchOrdersBySimilarity(t *testing.T) {
	ctx := context.Background()
	engine := New(vectordb.WithTopK(10))
	if err := engine.Insert(ctx, "cruises", seedRecords()...); err != nil {
		t.Fatal(err)
	}
	results, err := engine.Search(ctx, []float64{1, 0, 0}, vectordb.SearchWithCollection("cruises"))
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expect 3 results, got %d", len(results))
	}
	if results[0].ID != "cruise-001" {
		t.Errorf("expect cruise-001 first, got %s", results[0].ID)
	}
	if results[1].ID != "cruise-003" {
		t.Errorf("expect cruise-003 second, got %s", results[1].ID)
	}
	if results[0].Score < results[1].Score || results[1].Score < results[2].Score {
		t.Error("results not sorted by descending score")
	}
}

func TestSearchMetaFilter(t *testing.T) {
	ctx := context.Background()
	engine := New()
	if err := engine.Insert(ctx, "cruises", seedRecords()...); err != nil {
		t.Fatal(err)
	}
	results, err := engine.Search(ctx, []float64{0, 1, 0},
		vectordb.SearchWithCollection("cruises"),
		vectordb.SearchWithMeta(map[string]string{"destination": "Caribbean"}),
		vectordb.SearchWithTopK(5),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expect 2 Caribbean results, got %d", len(results))
	}
	for _, r := range results {
		if r.Embedding.Meta["destination"] != "Caribbean" {
			t.Errorf("unexpected destination for %s", r.ID)
		}
	}
}

func TestSearchExcludeIDs(t *testing.T) {
	ctx := context.Background()
	engine := New()
	if err := engine.Insert(ctx, "cruises", seedRecords()...); err != nil {
		t.Fatal(err)
	}
	results, err := engine.Search(ctx, []float64{1, 0, 0},
		vectordb.SearchWithCollection("cruises"),
		vectordb.SearchWithTopK(5),
		vectordb.SearchWithExcludeIDs("cruise-001"),
	)
	if err != nil {
		t.Fatal(err)
	}
	for _, r := range results {
		if r.ID == "cruise-001" {
			t.Error("excluded ID returned")
		}
	}
}

func TestSearchDocumentFilters(t *testing.T) {
	ctx := context.Background()
	engine := New()
	if err := engine.Insert(ctx, "cruises", seedRecords()...); err != nil {
		t.Fatal(err)
	}
	results, err := engine.Search(ctx, []float64{1, 0, 0},
		vectordb.SearchWithCollection("cruises"),
		vectordb.SearchWithTopK(5),
		vectordb.SearchWithInclude("Caribbean"),
		vectordb.SearchWithExclude("spa"),
	)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].ID != "cruise-001" {
		t.Fatalf("expect only cruise-001, got %v", results)
	}
}

func TestInsertUpsertsAndCount(t *testing.T) {
	ctx := context.Background()
	engine := New()
	records := seedRecords()
	if err := engine.Insert(ctx, "cruises", records...); err != nil {
		t.Fatal(err)
	}
	// same IDs again should not grow the collection
	if err := engine.Insert(ctx, "cruises", records...); err != nil {
		t.Fatal(err)
	}
	n, err := engine.Count(ctx, "cruises")
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("expect 3 records after upsert, got %d", n)
	}
	if n, _ := engine.Count(ctx, "missing"); n != 0 {
		t.Errorf("expect empty count for unknown collection, got %d", n)
	}
}
