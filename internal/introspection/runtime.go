// Package introspection serves the __schema and __type meta fields on top of
// another executor.Runtime.
package introspection

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"

	executor "github.com/hanpama/wpgraph/internal/executor"
	schema "github.com/hanpama/wpgraph/internal/schema"
)

// Wrapper pairs the introspecting runtime with the schema it executes
// against. Both must be handed to the executor together.
type Wrapper struct {
	Runtime executor.Runtime
	Schema  *schema.Schema
}

// Wrap returns a runtime answering introspection queries about sch and
// delegating every other field to base.
func Wrap(base executor.Runtime, sch *schema.Schema) *Wrapper {
	view, exec := extend(sch)
	return &Wrapper{
		Runtime: &runtime{base: base, schema: view},
		Schema:  exec,
	}
}

type runtime struct {
	base   executor.Runtime
	schema *schema.Schema
}

func (r *runtime) ResolveField(ctx context.Context, objectType, field string, source any, args map[string]any) (any, error) {
	switch objectType {
	case "__Schema":
		return r.schemaField(source.(*schema.Schema), field)
	case "__Type":
		return r.typeField(source.(*schema.TypeRef), field, args)
	case "__Field":
		return fieldField(source.(*schema.Field), field, args)
	case "__InputValue":
		return inputValueField(source.(*schema.InputValue), field)
	case "__EnumValue":
		return enumValueField(source.(*schema.EnumValue), field)
	case "__Directive":
		return directiveField(source.(*schema.Directive), field, args)
	}
	if objectType == r.schema.QueryType {
		switch field {
		case "__schema":
			return r.schema, nil
		case "__type":
			name, _ := args["name"].(string)
			if r.schema.Types[name] == nil {
				return nil, nil
			}
			return schema.NamedType(name), nil
		}
	}
	return r.base.ResolveField(ctx, objectType, field, source, args)
}

func (r *runtime) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	return r.base.ResolveType(ctx, abstractType, value)
}

func (r *runtime) SerializeLeafValue(ctx context.Context, typeName string, value any) (any, error) {
	if strings.HasPrefix(typeName, "__") {
		if s, ok := value.(string); ok {
			return s, nil
		}
		return nil, fmt.Errorf("%s cannot represent value: %v", typeName, value)
	}
	return r.base.SerializeLeafValue(ctx, typeName, value)
}

func (r *runtime) schemaField(s *schema.Schema, field string) (any, error) {
	switch field {
	case "description":
		if s.Description == "" {
			return nil, nil
		}
		return s.Description, nil
	case "types":
		names := make([]string, 0, len(s.Types))
		for name := range s.Types {
			names = append(names, name)
		}
		sort.Strings(names)
		refs := make([]*schema.TypeRef, len(names))
		for i, name := range names {
			refs[i] = schema.NamedType(name)
		}
		return refs, nil
	case "queryType":
		return typeRefOrNil(s.QueryType), nil
	case "mutationType":
		return typeRefOrNil(s.MutationType), nil
	case "subscriptionType":
		return typeRefOrNil(s.SubscriptionType), nil
	case "directives":
		dirs := make([]*schema.Directive, 0, len(s.Directives))
		for _, d := range s.Directives {
			dirs = append(dirs, d)
		}
		slices.SortFunc(dirs, func(a, b *schema.Directive) int { return strings.Compare(a.Name, b.Name) })
		return dirs, nil
	}
	return nil, fmt.Errorf("unknown field __Schema.%s", field)
}

// typeField resolves a __Type field. Wrapped references answer kind and ofType
// only; named references answer from the type definition.
func (r *runtime) typeField(ref *schema.TypeRef, field string, args map[string]any) (any, error) {
	if ref.Kind != schema.TypeRefKindNamed {
		switch field {
		case "kind":
			return string(ref.Kind), nil
		case "ofType":
			return ref.OfType, nil
		}
		return nil, nil
	}

	t := r.schema.Types[ref.Named]
	if t == nil {
		return nil, fmt.Errorf("unknown type %s", ref.Named)
	}
	switch field {
	case "kind":
		return string(t.Kind), nil
	case "name":
		return t.Name, nil
	case "description":
		if t.Description == "" {
			return nil, nil
		}
		return t.Description, nil
	case "specifiedByURL":
		if t.SpecifiedByURL == nil {
			return nil, nil
		}
		return *t.SpecifiedByURL, nil
	case "fields":
		if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
			return nil, nil
		}
		return visible(t.Fields, args, func(f *schema.Field) bool { return f.IsDeprecated }), nil
	case "interfaces":
		if t.Kind != schema.TypeKindObject && t.Kind != schema.TypeKindInterface {
			return nil, nil
		}
		return r.refs(t.Interfaces), nil
	case "possibleTypes":
		if t.Kind != schema.TypeKindInterface && t.Kind != schema.TypeKindUnion {
			return nil, nil
		}
		return r.refs(t.PossibleTypes), nil
	case "enumValues":
		if t.Kind != schema.TypeKindEnum {
			return nil, nil
		}
		return visible(t.EnumValues, args, func(v *schema.EnumValue) bool { return v.IsDeprecated }), nil
	case "inputFields":
		if t.Kind != schema.TypeKindInputObject {
			return nil, nil
		}
		return visible(t.InputFields, args, func(v *schema.InputValue) bool { return v.IsDeprecated }), nil
	case "ofType":
		return nil, nil
	case "isOneOf":
		if t.Kind != schema.TypeKindInputObject {
			return nil, nil
		}
		return t.OneOf, nil
	}
	return nil, fmt.Errorf("unknown field __Type.%s", field)
}

// refs returns references to the named types that exist in the schema.
func (r *runtime) refs(names []string) []*schema.TypeRef {
	out := make([]*schema.TypeRef, 0, len(names))
	for _, name := range names {
		if r.schema.Types[name] != nil {
			out = append(out, schema.NamedType(name))
		}
	}
	return out
}

func fieldField(f *schema.Field, field string, args map[string]any) (any, error) {
	switch field {
	case "name":
		return f.Name, nil
	case "description":
		return optional(f.Description), nil
	case "args":
		return visible(f.Arguments, args, func(v *schema.InputValue) bool { return v.IsDeprecated }), nil
	case "type":
		return f.Type, nil
	case "isDeprecated":
		return f.IsDeprecated, nil
	case "deprecationReason":
		return deprecationReason(f.IsDeprecated, f.DeprecationReason), nil
	}
	return nil, fmt.Errorf("unknown field __Field.%s", field)
}

func inputValueField(v *schema.InputValue, field string) (any, error) {
	switch field {
	case "name":
		return v.Name, nil
	case "description":
		return optional(v.Description), nil
	case "type":
		return v.Type, nil
	case "defaultValue":
		if v.DefaultValue == nil {
			return nil, nil
		}
		return schema.FormatValue(v.DefaultValue), nil
	case "isDeprecated":
		return v.IsDeprecated, nil
	case "deprecationReason":
		return deprecationReason(v.IsDeprecated, v.DeprecationReason), nil
	}
	return nil, fmt.Errorf("unknown field __InputValue.%s", field)
}

func enumValueField(v *schema.EnumValue, field string) (any, error) {
	switch field {
	case "name":
		return v.Name, nil
	case "description":
		return optional(v.Description), nil
	case "isDeprecated":
		return v.IsDeprecated, nil
	case "deprecationReason":
		return deprecationReason(v.IsDeprecated, v.DeprecationReason), nil
	}
	return nil, fmt.Errorf("unknown field __EnumValue.%s", field)
}

func directiveField(d *schema.Directive, field string, args map[string]any) (any, error) {
	switch field {
	case "name":
		return d.Name, nil
	case "description":
		return optional(d.Description), nil
	case "isRepeatable":
		return d.IsRepeatable, nil
	case "locations":
		return d.Locations, nil
	case "args":
		return visible(d.Arguments, args, func(v *schema.InputValue) bool { return v.IsDeprecated }), nil
	}
	return nil, fmt.Errorf("unknown field __Directive.%s", field)
}

// visible drops deprecated items unless includeDeprecated is set. Declaration
// order is kept.
func visible[T any](items []T, args map[string]any, deprecated func(T) bool) []T {
	all, _ := args["includeDeprecated"].(bool)
	out := make([]T, 0, len(items))
	for _, it := range items {
		if all || !deprecated(it) {
			out = append(out, it)
		}
	}
	return out
}

func typeRefOrNil(name string) any {
	if name == "" {
		return nil
	}
	return schema.NamedType(name)
}

func optional(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func deprecationReason(deprecated bool, reason string) any {
	if !deprecated {
		return nil
	}
	return reason
}
