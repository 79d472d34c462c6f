package booking

import (
	"fmt"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/vectordb"
	"github.com/voyagekit/cruisedesk/tools"
	"github.com/voyagekit/cruisedesk/tools/datasearch"
	"github.com/voyagekit/cruisedesk/tools/farecalc"
	"github.com/voyagekit/cruisedesk/tools/semantic"
)

// Toolset holds every tool the assistant's specialists can dispatch to,
// all wired to the same catalog and vector index.
type Toolset struct {
	Query      *datasearch.QueryTool
	Lookup     *datasearch.LookupTool
	PriceRange *datasearch.PriceRangeTool
	Pricing    *datasearch.PricingTool
	List       *datasearch.ListTool
	Stats      *datasearch.StatsTool
	Search     *semantic.SearchTool
	Similar    *semantic.SimilarTool
	Fare       *farecalc.Tool
}

// NewToolset wires every tool to the store and vector index. An empty
// collection means the default cruise collection.
func NewToolset(store *catalog.Store, engine vectordb.Engine, emb embedder.Embedder, collection string, opts ...tools.Option) *Toolset {
	semOpts := make([]semantic.Option, 0, len(opts)+1)
	for _, opt := range opts {
		semOpts = append(semOpts, semantic.WithToolOption(opt))
	}
	if collection != "" {
		semOpts = append(semOpts, semantic.WithCollection(collection))
	}
	return &Toolset{
		Query:      datasearch.NewQueryTool(store, opts...),
		Lookup:     datasearch.NewLookupTool(store, opts...),
		PriceRange: datasearch.NewPriceRangeTool(store, opts...),
		Pricing:    datasearch.NewPricingTool(store, opts...),
		List:       datasearch.NewListTool(store, opts...),
		Stats:      datasearch.NewStatsTool(store, opts...),
		Search:     semantic.NewSearchTool(engine, emb, semOpts...),
		Similar:    semantic.NewSimilarTool(engine, emb, store, semOpts...),
		Fare:       farecalc.New(opts...),
	}
}

// SelectItinerary maps an itinerary plan onto a catalog tool and its input.
func (ts *Toolset) SelectItinerary(plan *ItineraryPlan) (tools.OrchestrationTool, any, error) {
	switch plan.Tool {
	case "sql_query":
		if plan.Query == "" {
			return nil, nil, fmt.Errorf("booking: itinerary plan chose sql_query without a query")
		}
		return ts.Query, datasearch.NewQueryInput(plan.Query), nil
	case "cruise_lookup":
		if len(plan.CruiseIDs) == 0 {
			return nil, nil, fmt.Errorf("booking: itinerary plan chose cruise_lookup without cruise IDs")
		}
		return ts.Lookup, datasearch.NewLookupInput(plan.CruiseIDs...), nil
	case "list":
		return ts.List, &datasearch.ListInput{Limit: plan.Limit}, nil
	}
	return nil, nil, fmt.Errorf("booking: unknown itinerary tool %q", plan.Tool)
}

// SelectPricing maps a pricing plan onto a pricing tool and its input.
func (ts *Toolset) SelectPricing(plan *PricingPlan) (tools.OrchestrationTool, any, error) {
	switch plan.Tool {
	case "pricing":
		if plan.CruiseID == "" {
			return nil, nil, fmt.Errorf("booking: pricing plan chose pricing without a cruise ID")
		}
		return ts.Pricing, &datasearch.PricingInput{CruiseID: plan.CruiseID, CabinType: plan.CabinType}, nil
	case "price_range":
		return ts.PriceRange, datasearch.NewPriceRangeInput(plan.MinPrice, plan.MaxPrice), nil
	case "fare_calc":
		if plan.Expression == "" {
			return nil, nil, fmt.Errorf("booking: pricing plan chose fare_calc without an expression")
		}
		return ts.Fare, farecalc.NewInput(plan.Expression, plan.Params), nil
	}
	return nil, nil, fmt.Errorf("booking: unknown pricing tool %q", plan.Tool)
}

// SelectSearch maps a search plan onto a discovery tool and its input.
func (ts *Toolset) SelectSearch(plan *SearchPlan) (tools.OrchestrationTool, any, error) {
	switch plan.Tool {
	case "semantic_search":
		if plan.Query == "" {
			return nil, nil, fmt.Errorf("booking: search plan chose semantic_search without a query")
		}
		return ts.Search, &semantic.SearchInput{
			Query:    plan.Query,
			NResults: plan.NResults,
			Filters:  plan.Filters,
		}, nil
	case "cruise_lookup":
		if len(plan.CruiseIDs) == 0 {
			return nil, nil, fmt.Errorf("booking: search plan chose cruise_lookup without cruise IDs")
		}
		return ts.Lookup, datasearch.NewLookupInput(plan.CruiseIDs...), nil
	}
	return nil, nil, fmt.Errorf("booking: unknown search tool %q", plan.Tool)
}

// SelectRecommendation maps a recommendation plan onto a tool and its input.
func (ts *Toolset) SelectRecommendation(plan *RecommendationPlan) (tools.OrchestrationTool, any, error) {
	switch plan.Tool {
	case "find_similar":
		if plan.CruiseID == "" {
			return nil, nil, fmt.Errorf("booking: recommendation plan chose find_similar without a cruise ID")
		}
		return ts.Similar, &semantic.SimilarInput{CruiseID: plan.CruiseID, TopK: plan.TopK}, nil
	case "preference_search":
		if plan.Query == "" {
			return nil, nil, fmt.Errorf("booking: recommendation plan chose preference_search without a query")
		}
		return ts.Search, &semantic.SearchInput{Query: plan.Query, NResults: plan.TopK}, nil
	case "stats":
		return ts.Stats, &datasearch.StatsInput{}, nil
	}
	return nil, nil, fmt.Errorf("booking: unknown recommendation tool %q", plan.Tool)
}
