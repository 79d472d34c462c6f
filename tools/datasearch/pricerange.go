package datasearch

import (
	"context"
	"encoding/json"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// PriceRangeInput bounds the per-person price. A zero max means unbounded.
type PriceRangeInput struct {
	schema.Base
	// MinPrice lowest acceptable price per person.
	MinPrice float64 `json:"min_price" jsonschema:"title=min_price,description=Lowest acceptable price per person."`
	// MaxPrice highest acceptable price per person, 0 means no upper bound.
	MaxPrice float64 `json:"max_price,omitempty" jsonschema:"title=max_price,description=Highest acceptable price per person. 0 means no upper bound."`
}

func NewPriceRangeInput(minPrice, maxPrice float64) *PriceRangeInput {
	return &PriceRangeInput{MinPrice: minPrice, MaxPrice: maxPrice}
}

func (s PriceRangeInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// PriceRangeOutput lists matching cruises cheapest first.
type PriceRangeOutput struct {
	schema.Base
	// Cruises cruises within the price range, cheapest first.
	Cruises []catalog.Cruise `json:"cruises,omitempty" jsonschema:"title=cruises,description=Cruises within the price range cheapest first."`
}

func (s PriceRangeOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// PriceRangeTool finds cruises inside a per-person price window.
type PriceRangeTool struct {
	tools.Config
	store *catalog.Store
}

var _ tools.OrchestrationTool = (*PriceRangeTool)(nil)

func NewPriceRangeTool(store *catalog.Store, opts ...tools.Option) *PriceRangeTool {
	ret := &PriceRangeTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CruisePriceRangeTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Finds cruises whose per-person price falls inside a range.")
	}
	return ret
}

func (t *PriceRangeTool) Run(ctx context.Context, input *PriceRangeInput) (output *PriceRangeOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	cruises, err := t.store.PriceRange(ctx, input.MinPrice, input.MaxPrice)
	if err != nil {
		return nil, err
	}
	return &PriceRangeOutput{Cruises: cruises}, nil
}

func (t *PriceRangeTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[PriceRangeInput, PriceRangeOutput](ctx, t, input)
}

func (t *PriceRangeTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
