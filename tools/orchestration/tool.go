package orchestration

import (
	"context"
	"errors"

	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// ToolSelector returns the tool to run for a given plan, plus the concrete
// input to run it with.
type ToolSelector[I schema.Schema] func(req *I) (tools.OrchestrationTool, any, error)

// Tool dispatches a typed plan to one of several underlying tools.
type Tool[I schema.Schema] struct {
	tools.Config
	selector ToolSelector[I]
}

func New[I schema.Schema](selector ToolSelector[I], opts ...tools.Option) *Tool[I] {
	ret := new(Tool[I])
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("OrchestrationTool")
	}
	ret.selector = selector
	return ret
}

// RunOrchestration resolves the plan to a concrete tool and runs it.
func (t *Tool[I]) RunOrchestration(ctx context.Context, input any) (any, error) {
	in, ok := input.(*I)
	if !ok {
		return nil, errors.New("invalid tool input schema")
	}
	tool, params, err := t.selector(in)
	if err != nil {
		return nil, err
	}
	return tool.RunOrchestration(ctx, params)
}
