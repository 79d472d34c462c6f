package datasearch

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// LookupInput selects cruises by ID. When both fields are set the list
// takes precedence.
type LookupInput struct {
	schema.Base
	// CruiseID a single cruise identifier.
	CruiseID string `json:"cruise_id,omitempty" jsonschema:"title=cruise_id,description=A single cruise identifier."`
	// CruiseIDs multiple cruise identifiers, takes precedence over cruise_id.
	CruiseIDs []string `json:"cruise_ids,omitempty" jsonschema:"title=cruise_ids,description=Multiple cruise identifiers. Takes precedence over cruise_id."`
}

func NewLookupInput(ids ...string) *LookupInput {
	if len(ids) == 1 {
		return &LookupInput{CruiseID: ids[0]}
	}
	return &LookupInput{CruiseIDs: ids}
}

func (s LookupInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// LookupOutput returns found cruises and the IDs that matched nothing.
type LookupOutput struct {
	schema.Base
	// Cruises matched cruise records.
	Cruises []catalog.Cruise `json:"cruises,omitempty" jsonschema:"title=cruises,description=Matched cruise records."`
	// Missing IDs with no matching cruise.
	Missing []string `json:"missing,omitempty" jsonschema:"title=missing,description=IDs with no matching cruise."`
}

func (s LookupOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// LookupTool fetches cruises by ID.
type LookupTool struct {
	tools.Config
	store *catalog.Store
}

var _ tools.OrchestrationTool = (*LookupTool)(nil)

func NewLookupTool(store *catalog.Store, opts ...tools.Option) *LookupTool {
	ret := &LookupTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CruiseLookupTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Fetches full cruise records by one or more cruise IDs.")
	}
	return ret
}

func (t *LookupTool) Run(ctx context.Context, input *LookupInput) (output *LookupOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	ids := input.CruiseIDs
	if len(ids) == 0 {
		if input.CruiseID == "" {
			return nil, errors.New("datasearch: no cruise ID given")
		}
		ids = []string{input.CruiseID}
	}
	out := new(LookupOutput)
	for _, id := range ids {
		cruise, err := t.store.CruiseByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if cruise == nil {
			out.Missing = append(out.Missing, id)
			continue
		}
		out.Cruises = append(out.Cruises, *cruise)
	}
	return out, nil
}

func (t *LookupTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[LookupInput, LookupOutput](ctx, t, input)
}

func (t *LookupTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
