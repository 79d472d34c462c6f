package farecalc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartyTotal(t *testing.T) {
	tool := New()
	out, err := tool.Run(context.Background(), NewInput(
		"round2(base * passengers * (1 + tax_rate))",
		map[string]any{"base": 1299.0, "passengers": 2.0, "tax_rate": 0.12},
	))
	require.NoError(t, err)
	assert.Equal(t, 2909.76, out.Result)
}

func TestDiscount(t *testing.T) {
	tool := New()
	out, err := tool.Run(context.Background(), NewInput(
		"max(base - pct(base, discount), floor_price)",
		map[string]any{"base": 899.0, "discount": 15.0, "floor_price": 500.0},
	))
	require.NoError(t, err)
	assert.Equal(t, 764.15, out.Result)
}

func TestPerNight(t *testing.T) {
	tool := New()
	out, err := tool.Run(context.Background(), NewInput(
		"round2(total / nights)",
		map[string]any{"total": 2598.0, "nights": 7.0},
	))
	require.NoError(t, err)
	assert.Equal(t, 371.14, out.Result)
}

func TestBadExpression(t *testing.T) {
	tool := New()
	_, err := tool.Run(context.Background(), NewInput("base *", map[string]any{"base": 1.0}))
	assert.Error(t, err)

	_, err = tool.Run(context.Background(), NewInput("round2()", nil))
	assert.Error(t, err)

	_, err = tool.Run(context.Background(), NewInput("missing_param + 1", nil))
	assert.Error(t, err)
}
