package datasearch

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// PricingInput asks for the starting price of one cruise. Cabin type is
// accepted for forward compatibility but pricing is tracked per cruise.
type PricingInput struct {
	schema.Base
	// CruiseID cruise to price.
	CruiseID string `json:"cruise_id" jsonschema:"title=cruise_id,description=Cruise to price." validate:"required"`
	// CabinType optional cabin type, currently ignored.
	CabinType string `json:"cabin_type,omitempty" jsonschema:"title=cabin_type,description=Optional cabin type. Pricing is per cruise so this is informational."`
}

func NewPricingInput(cruiseID string) *PricingInput {
	return &PricingInput{CruiseID: cruiseID}
}

func (s PricingInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// PricingOutput carries the starting price when one is on file.
type PricingOutput struct {
	schema.Base
	// CruiseID the cruise that was priced.
	CruiseID string `json:"cruise_id" jsonschema:"title=cruise_id,description=The cruise that was priced."`
	// StartingPrice lowest advertised price for the cruise.
	StartingPrice float64 `json:"starting_price,omitempty" jsonschema:"title=starting_price,description=Lowest advertised price for the cruise."`
	// Found whether a pricing row exists for the cruise.
	Found bool `json:"found" jsonschema:"title=found,description=Whether a pricing row exists for the cruise."`
}

func (s PricingOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// PricingTool looks up starting prices from the pricing table.
type PricingTool struct {
	tools.Config
	store *catalog.Store
}

var _ tools.OrchestrationTool = (*PricingTool)(nil)

func NewPricingTool(store *catalog.Store, opts ...tools.Option) *PricingTool {
	ret := &PricingTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CruisePricingTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Returns the starting price on file for a cruise.")
	}
	return ret
}

func (t *PricingTool) Run(ctx context.Context, input *PricingInput) (output *PricingOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	if input.CruiseID == "" {
		return nil, errors.New("datasearch: cruise_id is required")
	}
	pricing, err := t.store.Pricing(ctx, input.CruiseID)
	if err != nil {
		return nil, err
	}
	out := &PricingOutput{CruiseID: input.CruiseID}
	if pricing != nil {
		out.StartingPrice = pricing.StartingPrice
		out.Found = true
	}
	return out, nil
}

func (t *PricingTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[PricingInput, PricingOutput](ctx, t, input)
}

func (t *PricingTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
