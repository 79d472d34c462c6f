package datasearch

import (
	"context"
	"encoding/json"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// StatsInput has no parameters.
type StatsInput struct {
	schema.Base
}

func (s StatsInput) String() string {
	return "{}"
}

// StatsOutput summarizes catalog contents.
type StatsOutput struct {
	schema.Base
	// Stats catalog row counts and price bounds.
	Stats catalog.Stats `json:"stats" jsonschema:"title=stats,description=Catalog row counts and price bounds."`
}

func (s StatsOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// StatsTool reports catalog statistics.
type StatsTool struct {
	tools.Config
	store *catalog.Store
}

var _ tools.OrchestrationTool = (*StatsTool)(nil)

func NewStatsTool(store *catalog.Store, opts ...tools.Option) *StatsTool {
	ret := &StatsTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CruiseStatsTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Reports catalog size, destinations and price bounds.")
	}
	return ret
}

func (t *StatsTool) Run(ctx context.Context, input *StatsInput) (output *StatsOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	stats, err := t.store.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsOutput{Stats: *stats}, nil
}

func (t *StatsTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[StatsInput, StatsOutput](ctx, t, input)
}

func (t *StatsTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
