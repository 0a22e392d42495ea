package executor

import (
	"fmt"
	"math"
	"strconv"

	language "github.com/hanpama/wpgraph/internal/language"
	schema "github.com/hanpama/wpgraph/internal/schema"
)

// coerceVariableValues coerces variable values according to their types
func coerceVariableValues(
	sch *schema.Schema,
	operation *language.OperationDefinition,
	variableValues map[string]any,
) (map[string]any, error) {
	coerced := make(map[string]any)
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable
		t := varDef.Type
		val, ok := variableValues[name]
		if !ok {
			if varDef.DefaultValue != nil {
				val = astValueToGo(varDef.DefaultValue)
			} else if t.NonNull {
				return nil, fmt.Errorf("variable $%s of required type %s was not provided", name, t.String())
			} else {
				continue
			}
		}
		if val == nil && t.NonNull {
			return nil, fmt.Errorf("variable $%s of type %s cannot be null", name, t.String())
		}
		cv, err := coerceValue(sch, val, typeRefFromAST(t))
		if err != nil {
			return nil, fmt.Errorf("variable $%s of type %s cannot be coerced: %v", name, t.String(), err)
		}
		coerced[name] = cv
	}
	return coerced, nil
}

// coerceArgumentValues coerces the arguments of one field. Optional arguments
// that are neither supplied nor defaulted are left out of the map. It reports
// false, after recording an error, when an argument cannot be coerced.
func coerceArgumentValues(state *executionState, fieldDef *schema.Field, field *language.Field, path Path) (map[string]any, bool) {
	coerced := make(map[string]any)
	for _, argDef := range fieldDef.Arguments {
		name := argDef.Name
		arg := field.Arguments.ForName(name)

		var (
			val     any
			present bool
		)
		if arg != nil {
			if arg.Value != nil && arg.Value.Kind == language.Variable {
				val, present = state.variableValues[arg.Value.Raw]
			} else {
				val, present = valueFromASTWithVars(arg.Value, state.variableValues), true
			}
		}
		if !present {
			if argDef.DefaultValue == nil {
				if schema.IsNonNull(argDef.Type) {
					state.addError(fmt.Sprintf("argument '%s' of required type %s was not provided", name, argDef.Type), field, path)
					return nil, false
				}
				continue
			}
			val = argDef.DefaultValue
		}
		cv, err := coerceValue(state.schema, val, argDef.Type)
		if err != nil {
			state.addError(fmt.Sprintf("argument '%s' cannot be coerced: %v", name, err), field, path)
			return nil, false
		}
		coerced[name] = cv
	}
	return coerced, true
}

// valueFromASTWithVars converts an AST value to a runtime value with variable substitution
func valueFromASTWithVars(value *language.Value, variableValues map[string]any) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.Variable:
		return variableValues[value.Raw]
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = valueFromASTWithVars(c.Value, variableValues)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any, len(value.Children))
		for _, f := range value.Children {
			m[f.Name] = valueFromASTWithVars(f.Value, variableValues)
		}
		return m
	default:
		return astValueToGo(value)
	}
}

// astValueToGo converts a constant AST value to a Go value
func astValueToGo(value *language.Value) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.IntValue:
		iv, err := strconv.Atoi(value.Raw)
		if err != nil {
			return value.Raw
		}
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue, language.EnumValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = astValueToGo(c.Value)
		}
		return out
	case language.ObjectValue:
		m := make(map[string]any)
		for _, f := range value.Children {
			m[f.Name] = astValueToGo(f.Value)
		}
		return m
	default:
		return nil
	}
}

// coerceValue coerces a value to the specified GraphQL input type
func coerceValue(sch *schema.Schema, value any, targetType *schema.TypeRef) (any, error) {
	if schema.IsNonNull(targetType) {
		if value == nil {
			return nil, fmt.Errorf("cannot provide null for non-null type")
		}
		return coerceValue(sch, value, schema.Unwrap(targetType))
	}

	if value == nil {
		return nil, nil
	}

	if schema.IsList(targetType) {
		return coerceListValue(sch, value, targetType)
	}

	namedType := schema.GetNamedType(targetType)
	switch namedType {
	case "Int":
		return coerceToInt(value)
	case "Float":
		return coerceToFloat(value)
	case "String":
		return coerceToString(value)
	case "Boolean":
		return coerceToBoolean(value)
	case "ID":
		return coerceToID(value)
	}

	typ := sch.Types[namedType]
	if typ == nil {
		return nil, fmt.Errorf("unknown input type %s", namedType)
	}
	switch typ.Kind {
	case schema.TypeKindEnum:
		name, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("enum %s expects a name, got %T", namedType, value)
		}
		for _, ev := range typ.EnumValues {
			if ev.Name == name {
				return name, nil
			}
		}
		return nil, fmt.Errorf("value %q does not exist in enum %s", name, namedType)
	case schema.TypeKindInputObject:
		return coerceInputObject(sch, value, typ)
	default:
		// Custom scalars pass through unchanged.
		return value, nil
	}
}

func coerceInputObject(sch *schema.Schema, value any, typ *schema.Type) (any, error) {
	in, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("input object %s expects an object, got %T", typ.Name, value)
	}
	out := make(map[string]any, len(typ.InputFields))
	for _, f := range typ.InputFields {
		v, present := in[f.Name]
		if !present {
			if f.DefaultValue == nil {
				if schema.IsNonNull(f.Type) {
					return nil, fmt.Errorf("field %s.%s of required type %s was not provided", typ.Name, f.Name, f.Type)
				}
				continue
			}
			v = f.DefaultValue
		}
		cv, err := coerceValue(sch, v, f.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %v", typ.Name, f.Name, err)
		}
		out[f.Name] = cv
	}
	for k := range in {
		found := false
		for _, f := range typ.InputFields {
			if f.Name == k {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("field %q is not defined by type %s", k, typ.Name)
		}
	}
	return out, nil
}

// coerceListValue coerces a value to a list
func coerceListValue(sch *schema.Schema, value any, listType *schema.TypeRef) (any, error) {
	innerType := schema.Unwrap(listType)
	if slice, ok := value.([]any); ok {
		coercedSlice := make([]any, len(slice))
		for i, item := range slice {
			coercedItem, err := coerceValue(sch, item, innerType)
			if err != nil {
				return nil, err
			}
			coercedSlice[i] = coercedItem
		}
		return coercedSlice, nil
	}

	// Single value becomes a list of one
	coercedItem, err := coerceValue(sch, value, innerType)
	if err != nil {
		return nil, err
	}
	return []any{coercedItem}, nil
}

func coerceToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		// JSON variables decode numbers as float64.
		if v == math.Trunc(v) {
			return int(v), nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Int", value, value)
}

func coerceToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Float", value, value)
}

func coerceToString(value any) (any, error) {
	if v, ok := value.(string); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to String", value, value)
}

func coerceToBoolean(value any) (any, error) {
	if v, ok := value.(bool); ok {
		return v, nil
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to Boolean", value, value)
}

func coerceToID(value any) (any, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10), nil
		}
	}
	return nil, fmt.Errorf("cannot coerce %v (%T) to ID", value, value)
}
