package tools

import (
	"context"
	"fmt"

	"github.com/voyagekit/cruisedesk/schema"
)

type ITool interface {
	SetTitle(string)
	Title() string
	SetDescription(string)
	Description() string
	SetStartHook(fn func(context.Context, AnonymousTool, any))
	SetEndHook(fn func(context.Context, AnonymousTool, any, any))
	SetErrorHook(fn func(context.Context, AnonymousTool, any, error))
}

type Tool[I schema.Schema, O schema.Schema] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

// AnonymousTool is a tool callable without compile-time knowledge of its
// input and output schemas. Orchestration layers dispatch through it.
type AnonymousTool interface {
	ITool
	RunAnonymous(context.Context, any) (any, error)
}

// OrchestrationTool is the dispatch surface used by tool agents: input is
// produced by an LLM plan and only resolved to a concrete schema inside.
type OrchestrationTool interface {
	ITool
	RunOrchestration(context.Context, any) (any, error)
}

// Dispatch adapts a typed tool to the anonymous calling convention.
func Dispatch[I schema.Schema, O schema.Schema](ctx context.Context, t Tool[I, O], input any) (any, error) {
	in, ok := input.(*I)
	if !ok {
		return nil, fmt.Errorf("%s: invalid input schema %T", t.Title(), input)
	}
	return t.Run(ctx, in)
}
