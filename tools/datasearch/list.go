package datasearch

import (
	"context"
	"encoding/json"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// ListInput bounds a catalog listing. A zero limit returns every cruise.
type ListInput struct {
	schema.Base
	// Limit maximum number of cruises to return, 0 for all.
	Limit int `json:"limit,omitempty" jsonschema:"title=limit,description=Maximum number of cruises to return. 0 returns all."`
}

func (s ListInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ListOutput lists cruises ordered by ID.
type ListOutput struct {
	schema.Base
	// Cruises catalog records ordered by cruise ID.
	Cruises []catalog.Cruise `json:"cruises,omitempty" jsonschema:"title=cruises,description=Catalog records ordered by cruise ID."`
	// Total number of cruises returned.
	Total int `json:"total" jsonschema:"title=total,description=Number of cruises returned."`
}

func (s ListOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// ListTool enumerates the catalog.
type ListTool struct {
	tools.Config
	store *catalog.Store
}

var _ tools.OrchestrationTool = (*ListTool)(nil)

func NewListTool(store *catalog.Store, opts ...tools.Option) *ListTool {
	ret := &ListTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CruiseListTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Lists cruises from the catalog, optionally limited.")
	}
	return ret
}

func (t *ListTool) Run(ctx context.Context, input *ListInput) (output *ListOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	cruises, err := t.store.Cruises(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	return &ListOutput{Cruises: cruises, Total: len(cruises)}, nil
}

func (t *ListTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[ListInput, ListOutput](ctx, t, input)
}

func (t *ListTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
