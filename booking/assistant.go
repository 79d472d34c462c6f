package booking

import (
	"context"
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	"go.uber.org/zap"

	"github.com/voyagekit/cruisedesk/agents"
	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/components/embedder"
	"github.com/voyagekit/cruisedesk/components/systemprompt"
	"github.com/voyagekit/cruisedesk/components/systemprompt/simple"
	"github.com/voyagekit/cruisedesk/components/vectordb"
	"github.com/voyagekit/cruisedesk/internal/logging"
	"github.com/voyagekit/cruisedesk/prompts"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
	"github.com/voyagekit/cruisedesk/tools/orchestration"
)

type assistantConfig struct {
	model       string
	temperature float32
	maxTokens   int
	collection  string
	loader      *prompts.Loader
	logger      logging.Logger
	toolOptions []tools.Option
}

type AssistantOption func(*assistantConfig)

func WithModel(model string) AssistantOption {
	return func(c *assistantConfig) {
		c.model = model
	}
}

func WithTemperature(temperature float32) AssistantOption {
	return func(c *assistantConfig) {
		c.temperature = temperature
	}
}

func WithMaxTokens(maxTokens int) AssistantOption {
	return func(c *assistantConfig) {
		c.maxTokens = maxTokens
	}
}

// WithCollection sets the vector collection searched by the semantic tools.
func WithCollection(name string) AssistantOption {
	return func(c *assistantConfig) {
		c.collection = name
	}
}

// WithPromptLoader overrides the prompt loader, e.g. to point at a prompt
// directory.
func WithPromptLoader(loader *prompts.Loader) AssistantOption {
	return func(c *assistantConfig) {
		c.loader = loader
	}
}

func WithLogger(logger logging.Logger) AssistantOption {
	return func(c *assistantConfig) {
		c.logger = logger
	}
}

// WithToolOptions passes options (hooks mostly) to every tool in the set.
func WithToolOptions(opts ...tools.Option) AssistantOption {
	return func(c *assistantConfig) {
		c.toolOptions = opts
	}
}

// Assistant is the cruise booking assistant. A reasoning pass extracts
// intent and constraints and picks specialists; each specialist plans one
// tool call and summarizes its result; a final pass merges everything into
// the structured answer.
type Assistant struct {
	reasoner       *agents.Agent[Query, Reasoning]
	root           *agents.Agent[Query, RootResponse]
	itinerary      *agents.ToolAgent[Query, ItineraryPlan, ItineraryResponse]
	pricing        *agents.ToolAgent[Query, PricingPlan, PricingResponse]
	search         *agents.ToolAgent[Query, SearchPlan, SearchResponse]
	recommendation *agents.ToolAgent[Query, RecommendationPlan, RecommendationResponse]
	toolset        *Toolset
	logger         logging.Logger
}

// NewAssistant wires the agent tree on top of a loaded catalog and vector
// index. The same instructor client drives every agent.
func NewAssistant(client instructor.Instructor, store *catalog.Store, engine vectordb.Engine, emb embedder.Embedder, opts ...AssistantOption) (*Assistant, error) {
	cfg := &assistantConfig{
		temperature: 0.2,
		maxTokens:   2048,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.loader == nil {
		cfg.loader = prompts.NewLoader()
	}
	if cfg.logger == nil {
		cfg.logger = logging.Nop()
	}

	ts := NewToolset(store, engine, emb, cfg.collection, cfg.toolOptions...)
	common := []agents.Option{
		agents.WithClient(client),
		agents.WithModel(cfg.model),
		agents.WithTemperature(cfg.temperature),
		agents.WithMaxTokens(cfg.maxTokens),
	}

	rootPrompt, err := cfg.loader.Load("root_agent")
	if err != nil {
		return nil, err
	}

	a := &Assistant{
		toolset: ts,
		logger:  cfg.logger,
	}

	a.reasoner = agents.NewAgent[Query, Reasoning](common...)
	a.reasoner.SetName(rootPrompt.Name + ".reason")
	a.reasoner.SetSystemPromptGenerator(simple.New(
		rootPrompt.Instruction+"\n\nAnalyze the latest user message and fill the reasoning schema. Do not answer the user yet.",
		CurrentDateProvider(),
		StatsProvider(store),
	))

	a.root = agents.NewAgent[Query, RootResponse](common...)
	a.root.SetName(rootPrompt.Name)
	a.root.SetSystemPromptGenerator(simple.New(
		rootPrompt.Instruction+"\n\nSystem messages contain your reasoning and the specialists' findings for the latest user message. Merge them into one final response.",
		CurrentDateProvider(),
	))

	// the SQL template carries the table schema, the itinerary planner
	// writes queries against it
	sqlGuidance, err := cfg.loader.SQLGenerationPrompt("the latest user message", catalog.CruiseColumns, catalog.CruisesTable)
	if err != nil {
		return nil, err
	}
	if a.itinerary, err = newSpecialist[ItineraryPlan, ItineraryResponse](cfg, "itinerary_agent", common, orchestration.New(ts.SelectItinerary), sqlGuidance, false); err != nil {
		return nil, err
	}
	if a.pricing, err = newSpecialist[PricingPlan, PricingResponse](cfg, "pricing_agent", common, orchestration.New(ts.SelectPricing), "", true); err != nil {
		return nil, err
	}
	if a.search, err = newSpecialist[SearchPlan, SearchResponse](cfg, "search_agent", common, orchestration.New(ts.SelectSearch), "", false); err != nil {
		return nil, err
	}
	if a.recommendation, err = newSpecialist[RecommendationPlan, RecommendationResponse](cfg, "recommendation_agent", common, orchestration.New(ts.SelectRecommendation), "", false); err != nil {
		return nil, err
	}
	return a, nil
}

// newSpecialist builds one planner/tool/summarizer agent from its prompt
// file. extraPlanner text is appended to the planning instruction;
// withSchema adds the table columns context provider.
func newSpecialist[T schema.Schema, O schema.Schema](cfg *assistantConfig, promptName string, common []agents.Option, tool tools.OrchestrationTool, extraPlanner string, withSchema bool) (*agents.ToolAgent[Query, T, O], error) {
	prompt, err := cfg.loader.Load(promptName)
	if err != nil {
		return nil, err
	}
	agent := agents.NewToolAgent[Query, T, O](common...)
	agent.SetTool(tool)
	agent.SetName(prompt.Name)
	planProviders := []systemprompt.ContextProvider{CurrentDateProvider()}
	if withSchema {
		planProviders = append(planProviders, ColumnsProvider())
	}
	planInstr := prompt.Instruction
	if extraPlanner != "" {
		planInstr += "\n\n" + extraPlanner
	}
	agent.Planner().SetSystemPromptGenerator(simple.New(
		planInstr+"\n\nDecide which tool to call for the latest user message and fill its parameters in the output schema.",
		planProviders...,
	))
	agent.Summarizer().SetSystemPromptGenerator(simple.New(
		prompt.Instruction + "\n\nA system message contains the tool result for the latest user message. Answer using only that data.",
	))
	return agent, nil
}

// Ask answers one user message. The returned LLMResponse carries the token
// usage accumulated over every model call of the turn.
func (a *Assistant) Ask(ctx context.Context, query *Query) (*RootResponse, *components.LLMResponse, error) {
	total := new(components.LLMResponse)

	reasoning := new(Reasoning)
	resp := new(components.LLMResponse)
	if err := a.reasoner.Run(ctx, query, reasoning, resp); err != nil {
		return nil, total, fmt.Errorf("booking: reasoning failed: %w", err)
	}
	mergeUsage(total, resp)
	a.logger.Debug("reasoning complete",
		zap.String("intent", string(reasoning.Intent)),
		zap.String("task_type", string(reasoning.TaskType)),
		zap.Strings("required_agents", reasoning.RequiredAgents),
	)

	if reasoning.NeedFollowUpInfo {
		message := "I need a bit more information before I can help with that."
		if len(reasoning.FollowUpQuestions) > 0 {
			message = "To help you best, could you answer a few questions?"
		}
		return &RootResponse{Response: Response{
			Message:           message,
			NeedFollowUpInfo:  true,
			FollowUpQuestions: reasoning.FollowUpQuestions,
		}}, total, nil
	}

	a.root.NewMessage(components.SystemRole, *reasoning)
	for _, name := range NormalizeAgents(reasoning.RequiredAgents) {
		out, err := a.delegate(ctx, name, query, total)
		if err != nil {
			// one specialist failing should not sink the whole answer
			a.logger.Warn("specialist failed", zap.String("agent", string(name)), zap.Error(err))
			a.root.NewMessage(components.SystemRole, schema.String(fmt.Sprintf("The %s specialist failed: %v", name, err)))
			continue
		}
		a.root.NewMessage(components.SystemRole, out)
	}

	output := new(RootResponse)
	resp = new(components.LLMResponse)
	if err := a.root.Run(ctx, query, output, resp); err != nil {
		return nil, total, fmt.Errorf("booking: merge failed: %w", err)
	}
	mergeUsage(total, resp)
	return output, total, nil
}

// delegate runs one specialist for the query. Each specialist gets one
// round: plan, tool call, summary.
func (a *Assistant) delegate(ctx context.Context, name AgentName, query *Query, total *components.LLMResponse) (schema.Schema, error) {
	resp := new(components.LLMResponse)
	defer func() { mergeUsage(total, resp) }()
	switch name {
	case ItineraryAgentName:
		out := new(ItineraryResponse)
		if err := a.itinerary.Run(ctx, query, out, resp); err != nil {
			return nil, err
		}
		return *out, nil
	case PricingAgentName:
		out := new(PricingResponse)
		if err := a.pricing.Run(ctx, query, out, resp); err != nil {
			return nil, err
		}
		return *out, nil
	case SearchAgentName:
		out := new(SearchResponse)
		if err := a.search.Run(ctx, query, out, resp); err != nil {
			return nil, err
		}
		return *out, nil
	case RecommendationAgentName:
		out := new(RecommendationResponse)
		if err := a.recommendation.Run(ctx, query, out, resp); err != nil {
			return nil, err
		}
		return *out, nil
	}
	return nil, fmt.Errorf("booking: unknown specialist %q", name)
}

// Reset clears the conversation state of every agent.
func (a *Assistant) Reset() {
	a.reasoner.ResetMemory()
	a.root.ResetMemory()
	a.itinerary.ResetMemory()
	a.pricing.ResetMemory()
	a.search.ResetMemory()
	a.recommendation.ResetMemory()
}

// Toolset exposes the wired tools, mainly for diagnostics commands.
func (a *Assistant) Toolset() *Toolset {
	return a.toolset
}

func mergeUsage(dst, src *components.LLMResponse) {
	if src.Usage == nil {
		return
	}
	if dst.Usage == nil {
		dst.Usage = new(components.LLMUsage)
	}
	dst.Usage.Merge(src.Usage)
	dst.Model = src.Model
}
