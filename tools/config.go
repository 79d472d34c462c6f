package tools

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "cruisedesk/tools"

// Config carries the shared state of every tool: title, description and
// lifecycle hooks. Embed it in concrete tool types.
type Config struct {
	// title the default title of the tool
	title string
	// description the default description of the tool
	description string

	startHook func(context.Context, AnonymousTool, any)
	endHook   func(context.Context, AnonymousTool, any, any)
	errorHook func(context.Context, AnonymousTool, any, error)
}

func (c *Config) SetTitle(v string) {
	c.title = v
}

func (c Config) Title() string {
	return c.title
}

func (c *Config) SetDescription(v string) {
	c.description = v
}

func (c Config) Description() string {
	return c.description
}

func (c *Config) SetStartHook(fn func(context.Context, AnonymousTool, any)) {
	c.startHook = fn
}

func (c *Config) SetEndHook(fn func(context.Context, AnonymousTool, any, any)) {
	c.endHook = fn
}

func (c *Config) SetErrorHook(fn func(context.Context, AnonymousTool, any, error)) {
	c.errorHook = fn
}

// Start opens a span for a tool run and fires the start hook.
func (c *Config) Start(ctx context.Context, t AnonymousTool, input any) (context.Context, trace.Span) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, c.title)
	if c.startHook != nil {
		c.startHook(ctx, t, input)
	}
	return ctx, span
}

// End records the outcome on the span and fires the matching hook. Call it
// once per run, after the tool body returns.
func (c *Config) End(ctx context.Context, span trace.Span, t AnonymousTool, input, output any, err error) {
	defer span.End()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if c.errorHook != nil {
			c.errorHook(ctx, t, input, err)
		}
		return
	}
	if c.endHook != nil {
		c.endHook(ctx, t, input, output)
	}
}
