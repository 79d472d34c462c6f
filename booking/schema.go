// Package booking wires the cruise booking assistant: a reasoning root
// agent that extracts intent and constraints, specialist sub-agents for
// itineraries, pricing, semantic search and recommendations, and the
// merge step that produces the final structured answer.
package booking

import (
	"encoding/json"

	"github.com/voyagekit/cruisedesk/schema"
)

// Query is a user message to the assistant.
type Query struct {
	schema.Base
	// Message the user's message.
	Message string `json:"message" jsonschema:"title=message,description=The user's message." validate:"required"`
}

func NewQuery(message string) *Query {
	return &Query{Message: message}
}

func (s Query) String() string {
	return s.Message
}

// Response is the base shape shared by every agent answer. Agents set
// NeedFollowUpInfo when the query is missing details they need.
type Response struct {
	schema.Base
	// Message human-readable response.
	Message string `json:"message" jsonschema:"title=message,description=Human-readable response. Summarize findings, answer the query, or explain what information is needed." validate:"required"`
	// NeedFollowUpInfo true when more information is needed from the user.
	NeedFollowUpInfo bool `json:"needFollowUpInfo" jsonschema:"title=needFollowUpInfo,description=True when the agent needs more information from the user such as travel dates, budget or preferences."`
	// FollowUpQuestions specific questions to ask when needFollowUpInfo is true.
	FollowUpQuestions []string `json:"follow_up_questions,omitempty" jsonschema:"title=follow_up_questions,description=Specific questions to ask when needFollowUpInfo is true. Empty if no follow-up needed."`
}

func (s Response) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ItineraryResponse is the itinerary agent's structured output.
type ItineraryResponse struct {
	Response
}

// PricingResponse is the pricing agent's structured output.
type PricingResponse struct {
	Response
}

// SearchResponse is the search agent's structured output.
type SearchResponse struct {
	Response
}

// RecommendationResponse is the recommendation agent's structured output.
type RecommendationResponse struct {
	Response
}

// CruiseOption is one concrete cruise surfaced to the user.
type CruiseOption struct {
	schema.Base
	// CruiseID identifier of the cruise.
	CruiseID string `json:"cruise_id" jsonschema:"title=cruise_id,description=Identifier of the cruise."`
	// ShipName name of the ship.
	ShipName string `json:"ship_name,omitempty" jsonschema:"title=ship_name,description=Name of the ship."`
	// Destination destination region.
	Destination string `json:"destination,omitempty" jsonschema:"title=destination,description=Destination region."`
	// DepartureDate departure date as stored in the catalog.
	DepartureDate string `json:"departure_date,omitempty" jsonschema:"title=departure_date,description=Departure date as stored in the catalog."`
	// Duration length in days.
	Duration int `json:"duration,omitempty" jsonschema:"title=duration,description=Length in days."`
	// PricePerPerson price per person when known.
	PricePerPerson float64 `json:"price_per_person,omitempty" jsonschema:"title=price_per_person,description=Price per person when known."`
	// Reason why this cruise fits the request.
	Reason string `json:"reason,omitempty" jsonschema:"title=reason,description=Why this cruise fits the request."`
}

func (s CruiseOption) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// RootResponse is the assistant's final answer to the user.
type RootResponse struct {
	Response
	// CruiseOptions concrete cruises referenced in the answer.
	CruiseOptions []CruiseOption `json:"cruise_options,omitempty" jsonschema:"title=cruise_options,description=Concrete cruises referenced in the answer."`
}

func (s RootResponse) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}
