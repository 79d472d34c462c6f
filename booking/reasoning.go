package booking

import (
	"encoding/json"
	"strings"

	"github.com/voyagekit/cruisedesk/schema"
)

// TaskType classifies what kind of task the user is working on.
type TaskType string

const (
	DiscoveryTask          TaskType = "discovery"
	ComparisonTask         TaskType = "comparison"
	BookingPreparationTask TaskType = "booking_preparation"
)

// Intent classifies the user's intent.
type Intent string

const (
	CruiseSearchIntent     Intent = "cruise_search"
	CruiseComparisonIntent Intent = "cruise_comparison"
	BookingInquiryIntent   Intent = "booking_inquiry"
	PolicyInquiryIntent    Intent = "policy_inquiry"
)

// AgentName identifies a specialist sub-agent.
type AgentName string

const (
	ItineraryAgentName      AgentName = "itinerary"
	PricingAgentName        AgentName = "pricing"
	SearchAgentName         AgentName = "search"
	RecommendationAgentName AgentName = "recommendation"
)

// Constraints are the booking constraints extracted from the conversation
// so far. Zero values mean the user has not stated the constraint.
type Constraints struct {
	schema.Base
	// DeparturePort departure port city name.
	DeparturePort string `json:"departure_port,omitempty" jsonschema:"title=departure_port,description=Departure port (city name)."`
	// DateRange date range such as 'June' or 'March-April'.
	DateRange string `json:"date_range,omitempty" jsonschema:"title=date_range,description=Date range (e.g. 'June' or 'March-April')."`
	// Duration cruise duration in days.
	Duration int `json:"duration,omitempty" jsonschema:"title=duration,description=Cruise duration in days."`
	// Budget maximum budget in USD.
	Budget float64 `json:"budget,omitempty" jsonschema:"title=budget,description=Maximum budget in USD."`
	// CabinType cabin type: Inside, Oceanview, Balcony or Suite.
	CabinType string `json:"cabin_type,omitempty" jsonschema:"title=cabin_type,description=Cabin type (Inside, Oceanview, Balcony, Suite)."`
	// TravelerType traveler type: Couple, Family or Solo.
	TravelerType string `json:"traveler_type,omitempty" jsonschema:"title=traveler_type,description=Traveler type (Couple, Family, Solo)."`
	// Destination destination region such as Caribbean or Mediterranean.
	Destination string `json:"destination,omitempty" jsonschema:"title=destination,description=Destination region (Caribbean, Mediterranean, etc)."`
	// Amenities desired amenities.
	Amenities []string `json:"amenities,omitempty" jsonschema:"title=amenities,description=Desired amenities (spa, kids_program, etc)."`
	// Atmosphere desired atmosphere such as romantic or family-friendly.
	Atmosphere string `json:"atmosphere,omitempty" jsonschema:"title=atmosphere,description=Desired atmosphere (romantic, family-friendly, etc)."`
}

func (s Constraints) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Reasoning is the root agent's analysis of a user message: what the user
// wants, the constraints gathered so far and which specialists to involve.
type Reasoning struct {
	schema.Base
	// Intent the classified intent of the message.
	Intent Intent `json:"intent" jsonschema:"title=intent,enum=cruise_search,enum=cruise_comparison,enum=booking_inquiry,enum=policy_inquiry,description=The classified intent of the message." validate:"required"`
	// TaskType the kind of task underway.
	TaskType TaskType `json:"task_type" jsonschema:"title=task_type,enum=discovery,enum=comparison,enum=booking_preparation,description=The kind of task underway." validate:"required"`
	// Constraints booking constraints extracted from the conversation.
	Constraints Constraints `json:"constraints" jsonschema:"title=constraints,description=Booking constraints extracted from the conversation."`
	// RequiredAgents specialists to involve: itinerary, pricing, search, recommendation.
	RequiredAgents []string `json:"required_agents,omitempty" jsonschema:"title=required_agents,description=Specialists to involve. Allowed values: itinerary, pricing, search, recommendation."`
	// ExecutionPlan ordered execution steps.
	ExecutionPlan []string `json:"execution_plan,omitempty" jsonschema:"title=execution_plan,description=Ordered list of execution steps."`
	// NeedFollowUpInfo true when the question cannot be answered without more details.
	NeedFollowUpInfo bool `json:"needFollowUpInfo" jsonschema:"title=needFollowUpInfo,description=True when the question cannot be answered without more details from the user."`
	// FollowUpQuestions questions to ask when needFollowUpInfo is true.
	FollowUpQuestions []string `json:"follow_up_questions,omitempty" jsonschema:"title=follow_up_questions,description=Questions to ask when needFollowUpInfo is true."`
}

func (s Reasoning) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// NormalizeAgents maps loosely named specialists from model output onto
// the known agent names, preserving order and dropping duplicates and
// unknowns. Models sometimes answer with names like
// "ItinerarySearchAgent" or "PricingAndAvailabilityAgent".
func NormalizeAgents(names []string) []AgentName {
	seen := make(map[AgentName]struct{}, 4)
	out := make([]AgentName, 0, len(names))
	for _, raw := range names {
		lowered := strings.ToLower(raw)
		var name AgentName
		switch {
		case strings.Contains(lowered, "itinerar"):
			name = ItineraryAgentName
		case strings.Contains(lowered, "pric"):
			name = PricingAgentName
		case strings.Contains(lowered, "recommend"):
			name = RecommendationAgentName
		case strings.Contains(lowered, "search"), strings.Contains(lowered, "semantic"):
			name = SearchAgentName
		default:
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
