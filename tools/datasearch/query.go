// Package datasearch exposes the cruise catalog to agents: raw read-only
// SQL plus structured lookups for the cases the agents hit most.
package datasearch

import (
	"context"
	"encoding/json"

	"github.com/voyagekit/cruisedesk/catalog"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// QueryInput carries a generated SQL statement to run against the cruises
// table. Only single read-only SELECT statements are accepted.
type QueryInput struct {
	schema.Base
	// Query SQL SELECT statement against the cruises table.
	Query string `json:"query" jsonschema:"title=query,description=SQL SELECT statement against the cruises table." validate:"required"`
}

func NewQueryInput(query string) *QueryInput {
	return &QueryInput{Query: query}
}

func (s QueryInput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// QueryOutput holds the rows produced by the statement.
type QueryOutput struct {
	schema.Base
	// Results rows returned by the query, keyed by column name.
	Results []map[string]any `json:"results,omitempty" jsonschema:"title=results,description=Rows returned by the query keyed by column name."`
	// Count number of rows returned.
	Count int `json:"count" jsonschema:"title=count,description=Number of rows returned."`
}

func (s QueryOutput) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// QueryTool runs guarded SQL against the catalog.
type QueryTool struct {
	tools.Config
	store *catalog.Store
}

var _ tools.OrchestrationTool = (*QueryTool)(nil)

func NewQueryTool(store *catalog.Store, opts ...tools.Option) *QueryTool {
	ret := &QueryTool{store: store}
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("CruiseQueryTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Runs a read-only SQL query against the cruises table and returns matching rows.")
	}
	return ret
}

func (t *QueryTool) Run(ctx context.Context, input *QueryInput) (output *QueryOutput, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	rows, err := t.store.ExecuteQuery(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	return &QueryOutput{Results: rows, Count: len(rows)}, nil
}

func (t *QueryTool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[QueryInput, QueryOutput](ctx, t, input)
}

func (t *QueryTool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
