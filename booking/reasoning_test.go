package booking

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAgents(t *testing.T) {
	got := NormalizeAgents([]string{
		"ItinerarySearchAgent",
		"PricingAndAvailabilityAgent",
		"pricing",
		"SemanticSearchAgent",
		"RecommendationAgent",
		"WeatherAgent",
	})
	assert.Equal(t, []AgentName{
		ItineraryAgentName,
		PricingAgentName,
		SearchAgentName,
		RecommendationAgentName,
	}, got)

	assert.Empty(t, NormalizeAgents(nil))
	assert.Empty(t, NormalizeAgents([]string{"nonsense"}))
}

func TestResponseJSONShape(t *testing.T) {
	resp := RootResponse{
		Response: Response{
			Message:           "Here are two options.",
			NeedFollowUpInfo:  true,
			FollowUpQuestions: []string{"What is your budget?"},
		},
		CruiseOptions: []CruiseOption{{CruiseID: "CR001", ShipName: "Ocean Star"}},
	}
	bs, err := json.Marshal(resp)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(bs, &m))
	assert.Contains(t, m, "message")
	assert.Contains(t, m, "needFollowUpInfo")
	assert.Contains(t, m, "follow_up_questions")
	assert.Contains(t, m, "cruise_options")
}

func TestReasoningUnmarshal(t *testing.T) {
	raw := `{
		"intent": "cruise_search",
		"task_type": "discovery",
		"constraints": {"departure_port": "Miami", "budget": 3000, "duration": 7},
		"required_agents": ["search", "pricing"],
		"execution_plan": ["search_itineraries", "fetch_pricing"],
		"needFollowUpInfo": false
	}`
	var r Reasoning
	require.NoError(t, json.Unmarshal([]byte(raw), &r))
	assert.Equal(t, CruiseSearchIntent, r.Intent)
	assert.Equal(t, DiscoveryTask, r.TaskType)
	assert.Equal(t, "Miami", r.Constraints.DeparturePort)
	assert.Equal(t, 3000.0, r.Constraints.Budget)
	assert.Equal(t, []AgentName{SearchAgentName, PricingAgentName}, NormalizeAgents(r.RequiredAgents))
}
