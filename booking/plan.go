package booking

import (
	"encoding/json"

	"github.com/voyagekit/cruisedesk/schema"
)

// Plan schemas are the intermediate outputs of each specialist's planning
// stage: the model picks a tool and fills the parameters for it. The tool
// field discriminates which of the plan's parameter groups applies.

// ItineraryPlan selects a catalog tool for an itinerary question.
type ItineraryPlan struct {
	schema.Base
	// Tool which tool to run: sql_query, cruise_lookup or list.
	Tool string `json:"tool" jsonschema:"title=tool,enum=sql_query,enum=cruise_lookup,enum=list,description=Which tool to run." validate:"required"`
	// Query SQL SELECT statement, for tool sql_query.
	Query string `json:"query,omitempty" jsonschema:"title=query,description=SQL SELECT statement over the cruises table. Required for tool sql_query."`
	// CruiseIDs cruises to fetch, for tool cruise_lookup.
	CruiseIDs []string `json:"cruise_ids,omitempty" jsonschema:"title=cruise_ids,description=Cruises to fetch. Required for tool cruise_lookup."`
	// Limit maximum number of cruises, for tool list.
	Limit int `json:"limit,omitempty" jsonschema:"title=limit,description=Maximum number of cruises for tool list. 0 returns all."`
}

func (s ItineraryPlan) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// PricingPlan selects a pricing tool.
type PricingPlan struct {
	schema.Base
	// Tool which tool to run: pricing, price_range or fare_calc.
	Tool string `json:"tool" jsonschema:"title=tool,enum=pricing,enum=price_range,enum=fare_calc,description=Which tool to run." validate:"required"`
	// CruiseID cruise to price, for tool pricing.
	CruiseID string `json:"cruise_id,omitempty" jsonschema:"title=cruise_id,description=Cruise to price. Required for tool pricing."`
	// CabinType optional cabin type for tool pricing.
	CabinType string `json:"cabin_type,omitempty" jsonschema:"title=cabin_type,description=Optional cabin type for tool pricing."`
	// MinPrice lower bound for tool price_range.
	MinPrice float64 `json:"min_price,omitempty" jsonschema:"title=min_price,description=Lower per-person price bound for tool price_range."`
	// MaxPrice upper bound for tool price_range, 0 means unbounded.
	MaxPrice float64 `json:"max_price,omitempty" jsonschema:"title=max_price,description=Upper per-person price bound for tool price_range. 0 means unbounded."`
	// Expression fare expression for tool fare_calc.
	Expression string `json:"expression,omitempty" jsonschema:"title=expression,description=Fare expression for tool fare_calc. For example 'round2(base * passengers)'."`
	// Params named values for the fare expression.
	Params map[string]any `json:"params,omitempty" jsonschema:"title=params,description=Named values referenced by the fare expression."`
}

func (s PricingPlan) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// SearchPlan selects a discovery tool: free-text semantic search or a
// direct lookup when the user already named cruises.
type SearchPlan struct {
	schema.Base
	// Tool which tool to run: semantic_search or cruise_lookup.
	Tool string `json:"tool" jsonschema:"title=tool,enum=semantic_search,enum=cruise_lookup,description=Which tool to run." validate:"required"`
	// Query natural language description of the desired cruise, for tool semantic_search.
	Query string `json:"query,omitempty" jsonschema:"title=query,description=Natural language description of the desired cruise. Required for tool semantic_search."`
	// NResults number of matches to return, defaults to 5.
	NResults int `json:"n_results,omitempty" jsonschema:"title=n_results,description=Number of matches to return. Defaults to 5."`
	// Filters metadata equality filters for explicitly stated constraints only.
	Filters map[string]string `json:"filters,omitempty" jsonschema:"title=filters,description=Metadata equality filters for explicitly stated constraints only (destination, cabin_type, availability)."`
	// CruiseIDs cruises to fetch, for tool cruise_lookup.
	CruiseIDs []string `json:"cruise_ids,omitempty" jsonschema:"title=cruise_ids,description=Cruises the user named. Required for tool cruise_lookup."`
}

func (s SearchPlan) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// RecommendationPlan selects a recommendation tool: alternatives to a
// reference cruise, preference search, or catalog stats for orientation.
type RecommendationPlan struct {
	schema.Base
	// Tool which tool to run: find_similar, preference_search or stats.
	Tool string `json:"tool" jsonschema:"title=tool,enum=find_similar,enum=preference_search,enum=stats,description=Which tool to run." validate:"required"`
	// CruiseID the cruise the user likes, for tool find_similar.
	CruiseID string `json:"cruise_id,omitempty" jsonschema:"title=cruise_id,description=The cruise the user likes. Required for tool find_similar."`
	// Query stated preferences, for tool preference_search.
	Query string `json:"query,omitempty" jsonschema:"title=query,description=The user's stated preferences. Required for tool preference_search."`
	// TopK number of suggestions, defaults per tool.
	TopK int `json:"top_k,omitempty" jsonschema:"title=top_k,description=Number of suggestions to return."`
}

func (s RecommendationPlan) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
