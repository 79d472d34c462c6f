// Package farecalc evaluates fare arithmetic for pricing answers: totals
// per party, per-night comparisons, discounts and taxes.
package farecalc

import (
	"context"
	"encoding/json"

	"github.com/Knetic/govaluate"

	"github.com/voyagekit/cruisedesk/schema"
	"github.com/voyagekit/cruisedesk/tools"
)

// Input is an arithmetic expression over fare parameters. Functions
// round, round2, ceil, floor, abs, min, max and pct(x, p) are available.
type Input struct {
	schema.Base
	// Expression fare expression to evaluate, for example 'round2(base * passengers * (1 + tax_rate))'.
	Expression string `json:"expression" jsonschema:"title=expression,description=Fare expression to evaluate. For example 'round2(base * passengers * (1 + tax_rate))'." validate:"required"`
	// Params named values referenced by the expression.
	Params map[string]any `json:"params,omitempty" jsonschema:"title=params,description=Named values referenced by the expression."`
}

func NewInput(exp string, params map[string]any) *Input {
	return &Input{
		Expression: exp,
		Params:     params,
	}
}

func (s Input) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

// Output carries the evaluated result.
type Output struct {
	schema.Base
	// Result result of the calculation.
	Result any `json:"result,omitempty" jsonschema:"title=result,description=Result of the calculation."`
}

func NewOutput(result any) *Output {
	return &Output{
		Result: result,
	}
}

func (s Output) String() string {
	bs, _ := json.Marshal(s)
	return string(bs)
}

type Tool struct {
	tools.Config
}

var _ tools.OrchestrationTool = (*Tool)(nil)

func New(opts ...tools.Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("FareCalculatorTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Evaluates fare arithmetic such as party totals, discounts and taxes.")
	}
	return ret
}

func (t *Tool) Run(ctx context.Context, input *Input) (output *Output, err error) {
	ctx, span := t.Start(ctx, t, input)
	defer func() { t.End(ctx, span, t, input, output, err) }()
	exp, err := govaluate.NewEvaluableExpressionWithFunctions(input.Expression, functions)
	if err != nil {
		return nil, err
	}
	result, err := exp.Evaluate(input.Params)
	if err != nil {
		return nil, err
	}
	return NewOutput(result), nil
}

func (t *Tool) RunAnonymous(ctx context.Context, input any) (any, error) {
	return tools.Dispatch[Input, Output](ctx, t, input)
}

func (t *Tool) RunOrchestration(ctx context.Context, input any) (any, error) {
	return t.RunAnonymous(ctx, input)
}
