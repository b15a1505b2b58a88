package bridge

import (
	"encoding/json"
	"math"

	"github.com/GriffinCanCode/hostbridge/internal/shared/types"
)

// validate checks args against the tool's parameters before any host action.
// Required arguments must be present and typed; required strings must be
// non-empty. Present optional arguments must be typed as well.
func validate(tool types.Tool, args map[string]interface{}) error {
	for _, p := range tool.Parameters {
		v, present := args[p.Name]
		if !present || v == nil {
			if p.Required {
				return types.NewError(types.KindInvalidArgument, "%s is required", p.Name)
			}
			continue
		}

		if !matchesType(p.Type, v) {
			return types.NewError(types.KindInvalidArgument, "%s must be a %s", p.Name, p.Type)
		}

		if s, ok := v.(string); ok && p.Required && s == "" {
			return types.NewError(types.KindInvalidArgument, "%s cannot be empty", p.Name)
		}
	}
	return nil
}

func matchesType(paramType string, v interface{}) bool {
	switch paramType {
	case types.ParamString:
		_, ok := v.(string)
		return ok
	case types.ParamInteger:
		_, ok := toInt(v)
		return ok
	case types.ParamBoolean:
		_, ok := v.(bool)
		return ok
	default:
		return true
	}
}

// toInt accepts Go integers and integral JSON numbers
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		if n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return toInt(i)
	default:
		return 0, false
	}
}

func stringArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func optionalString(args map[string]interface{}, name string) *string {
	s, ok := args[name].(string)
	if !ok {
		return nil
	}
	return &s
}

func intArg(args map[string]interface{}, name string) int {
	n, _ := toInt(args[name])
	return n
}
