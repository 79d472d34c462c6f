package farecalc

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
)

func argFloat(name string, args []any, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("farecalc: %s expects %d arguments, got %d", name, n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		f, ok := a.(float64)
		if !ok {
			return nil, fmt.Errorf("farecalc: %s argument %d is not a number", name, i+1)
		}
		out[i] = f
	}
	return out, nil
}

// functions available inside fare expressions
var functions = map[string]govaluate.ExpressionFunction{
	"round": func(args ...any) (any, error) {
		v, err := argFloat("round", args, 1)
		if err != nil {
			return nil, err
		}
		return math.Round(v[0]), nil
	},
	// round2 rounds to cents
	"round2": func(args ...any) (any, error) {
		v, err := argFloat("round2", args, 1)
		if err != nil {
			return nil, err
		}
		return math.Round(v[0]*100) / 100, nil
	},
	"ceil": func(args ...any) (any, error) {
		v, err := argFloat("ceil", args, 1)
		if err != nil {
			return nil, err
		}
		return math.Ceil(v[0]), nil
	},
	"floor": func(args ...any) (any, error) {
		v, err := argFloat("floor", args, 1)
		if err != nil {
			return nil, err
		}
		return math.Floor(v[0]), nil
	},
	"abs": func(args ...any) (any, error) {
		v, err := argFloat("abs", args, 1)
		if err != nil {
			return nil, err
		}
		return math.Abs(v[0]), nil
	},
	"min": func(args ...any) (any, error) {
		v, err := argFloat("min", args, 2)
		if err != nil {
			return nil, err
		}
		return math.Min(v[0], v[1]), nil
	},
	"max": func(args ...any) (any, error) {
		v, err := argFloat("max", args, 2)
		if err != nil {
			return nil, err
		}
		return math.Max(v[0], v[1]), nil
	},
	// pct(x, p) returns p percent of x
	"pct": func(args ...any) (any, error) {
		v, err := argFloat("pct", args, 2)
		if err != nil {
			return nil, err
		}
		return v[0] * v[1] / 100, nil
	},
}
