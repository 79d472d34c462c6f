package agents

import (
	"context"
	"errors"

	"github.com/voyagekit/cruisedesk/components"
	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// ToolAgent plans a tool call from user input, runs the tool, then
// summarizes the tool result into the final output schema.
type ToolAgent[I schema.Schema, T schema.Schema, O schema.Schema] struct {
	start *Agent[I, T]
	end   *Agent[I, O]
	tool  tools.OrchestrationTool
	name  string
}

// NewToolAgent returns a new ToolAgent instance
func NewToolAgent[I schema.Schema, T schema.Schema, O schema.Schema](options ...Option) *ToolAgent[I, T, O] {
	ret := &ToolAgent[I, T, O]{
		start: NewAgent[I, T](options...),
		end:   NewAgent[I, O](options...),
	}
	ret.name = ret.start.Name()
	return ret
}

func (t *ToolAgent[I, T, O]) SetTool(tool tools.OrchestrationTool) *ToolAgent[I, T, O] {
	t.tool = tool
	return t
}

// Planner exposes the planning stage agent for prompt customization.
func (t *ToolAgent[I, T, O]) Planner() *Agent[I, T] {
	return t.start
}

// Summarizer exposes the summarizing stage agent for prompt customization.
func (t *ToolAgent[I, T, O]) Summarizer() *Agent[I, O] {
	return t.end
}

func (t *ToolAgent[I, T, O]) Name() string {
	return t.name
}

func (t *ToolAgent[I, T, O]) SetName(name string) {
	t.name = name
	t.start.SetName(name + ".plan")
	t.end.SetName(name + ".summarize")
}

func (t *ToolAgent[I, T, O]) ResetMemory() {
	t.start.ResetMemory()
	t.end.ResetMemory()
}

// Run plans a tool call, executes it and summarizes the result. Usage from
// both model calls accumulates into llmResp.
func (t *ToolAgent[I, T, O]) Run(ctx context.Context, userInput *I, output *O, llmResp *components.LLMResponse) error {
	toolInput := new(T)
	planResp := new(components.LLMResponse)
	if err := t.start.Run(ctx, userInput, toolInput, planResp); err != nil {
		return err
	}
	if t.tool != nil {
		toolResult, err := t.tool.RunOrchestration(ctx, toolInput)
		if err != nil {
			return err
		}
		outO, ok := toolResult.(schema.Schema)
		if !ok {
			return errors.New("invalid tool output schema")
		}
		t.end.NewMessage(components.SystemRole, outO)
	}
	if err := t.end.Run(ctx, userInput, output, llmResp); err != nil {
		return err
	}
	if llmResp != nil && planResp.Usage != nil {
		if llmResp.Usage == nil {
			llmResp.Usage = new(components.LLMUsage)
		}
		llmResp.Usage.Merge(planResp.Usage)
	}
	return nil
}

// RunAnonymous runs the tool agent without compile-time schema knowledge.
func (t *ToolAgent[I, T, O]) RunAnonymous(ctx context.Context, userInput any, llmResp *components.LLMResponse) (any, error) {
	in, ok := userInput.(*I)
	if !ok {
		return nil, errors.New("invalid input schema")
	}
	out := new(O)
	if err := t.Run(ctx, in, out, llmResp); err != nil {
		return nil, err
	}
	return out, nil
}
