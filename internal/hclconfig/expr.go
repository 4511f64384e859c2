package hclconfig

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/specialistvlad/beamgrid/internal/config"
)

var entryFunctions = map[string]function.Function{
	"floor": stdlib.FloorFunc,
	"min":   stdlib.MinFunc,
	"max":   stdlib.MaxFunc,
}

// entryExpr defers evaluation of a simulate block's entry attribute until the
// grid dimensions are known.
type entryExpr struct {
	expr hcl.Expression
}

// evalContext exposes the grid as an object variable.
func evalContext(dims config.GridDims) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"grid": cty.ObjectVal(map[string]cty.Value{
				"width":  cty.NumberIntVal(int64(dims.Width)),
				"height": cty.NumberIntVal(int64(dims.Height)),
			}),
		},
		Functions: entryFunctions,
	}
}

// Evaluate implements config.EntryExpr.
func (e *entryExpr) Evaluate(dims config.GridDims) (string, error) {
	val, diags := e.expr.Value(evalContext(dims))
	if diags.HasErrors() {
		return "", fmt.Errorf("failed to evaluate entry at %s: %w", e.expr.Range(), diags)
	}
	if !val.IsKnown() || val.IsNull() {
		return "", fmt.Errorf("entry at %s evaluated to no value", e.expr.Range())
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("entry at %s must be a string: %w", e.expr.Range(), err)
	}
	var out string
	if err := gocty.FromCtyValue(str, &out); err != nil {
		return "", fmt.Errorf("entry at %s: %w", e.expr.Range(), err)
	}
	return out, nil
}
