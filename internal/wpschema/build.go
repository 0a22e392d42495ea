package wpschema

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"

	schema "github.com/hanpama/wpgraph/internal/schema"
	"github.com/hanpama/wpgraph/internal/wp"
)

// Schema is the built GraphQL schema together with the resolvers of its
// fields. It is immutable and safe for concurrent use.
type Schema struct {
	registry  *Registry
	graphql   *schema.Schema
	resolvers map[string]map[string]Resolver
}

// Build freezes the registry and assembles the schema: the WP_Post interface,
// one object type per variant, WP_Term, PostStatus and the Query root.
func (r *Registry) Build() (*Schema, error) {
	r.mu.Lock()
	r.frozen = true
	r.mu.Unlock()

	variants := r.Variants()
	if len(variants) == 0 {
		return nil, errors.New("wpschema: no variants registered")
	}

	s := &Schema{
		registry:  r,
		graphql:   schema.NewSchema("WordPress content"),
		resolvers: make(map[string]map[string]Resolver),
	}

	iface := schema.NewType(PostInterface, schema.TypeKindInterface, "The base WordPress post type")
	shared := PostFields(r.env)
	for _, d := range shared {
		iface.AddField(d.definition())
	}

	for _, v := range variants {
		if err := checkImplements(v, shared); err != nil {
			return nil, err
		}
		obj, err := s.addObject(v.Name, v.Description, v.Fields)
		if err != nil {
			return nil, err
		}
		obj.AddInterface(PostInterface)
		iface.AddPossibleType(v.Name)
	}
	s.graphql.AddType(iface)

	if _, err := s.addObject(TermType, "A taxonomy term such as a category or tag", TermFields()); err != nil {
		return nil, err
	}

	status := schema.NewType(StatusEnum, schema.TypeKindEnum, "The publication status of a post")
	for _, v := range postStatuses {
		status.AddEnumValue(schema.NewEnumValue(v.name, v.description))
	}
	s.graphql.AddType(status)

	if _, err := s.addObject(QueryType, "", QueryFields(r.env)); err != nil {
		return nil, err
	}
	s.graphql.SetQueryType(QueryType)
	return s, nil
}

func (s *Schema) addObject(name, description string, fields []FieldDescriptor) (*schema.Type, error) {
	obj := schema.NewType(name, schema.TypeKindObject, description)
	resolvers := make(map[string]Resolver, len(fields))
	for _, d := range fields {
		if _, dup := resolvers[d.Name]; dup {
			return nil, fmt.Errorf("wpschema: %s declares field %q twice", name, d.Name)
		}
		if d.Resolve == nil {
			return nil, fmt.Errorf("wpschema: %s.%s has no resolver", name, d.Name)
		}
		resolvers[d.Name] = d.Resolve
		obj.AddField(d.definition())
	}
	s.resolvers[name] = resolvers
	s.graphql.AddType(obj)
	return obj, nil
}

// checkImplements reports an error unless v declares every shared field with
// the same type.
func checkImplements(v *Variant, shared []FieldDescriptor) error {
	for _, want := range shared {
		got := v.Field(want.Name)
		if got == nil {
			return fmt.Errorf("wpschema: %s does not declare %s.%s", v.Name, PostInterface, want.Name)
		}
		if got.Type.String() != want.Type.String() {
			return fmt.Errorf("wpschema: %s.%s has type %s, %s.%s requires %s", v.Name, want.Name, got.Type, PostInterface, want.Name, want.Type)
		}
	}
	return nil
}

// GraphQL returns the type system of the schema.
func (s *Schema) GraphQL() *schema.Schema { return s.graphql }

// Registry returns the registry the schema was built from.
func (s *Schema) Registry() *Registry { return s.registry }

// SDL renders the schema in the GraphQL schema definition language.
func (s *Schema) SDL() string { return schema.Render(s.graphql) }

// ResolveField runs the resolver declared for objectType.field.
func (s *Schema) ResolveField(ctx context.Context, objectType string, field string, source any, args map[string]any) (any, error) {
	resolve, ok := s.resolvers[objectType][field]
	if !ok {
		return nil, fmt.Errorf("no resolver for %s.%s", objectType, field)
	}
	return resolve(ctx, source, Args(args))
}

// ResolveType maps a post onto the object type registered for its post_type.
// It returns "" when no type is registered.
func (s *Schema) ResolveType(ctx context.Context, abstractType string, value any) (string, error) {
	if abstractType != PostInterface {
		return "", fmt.Errorf("cannot resolve values of abstract type %s", abstractType)
	}
	p, ok := value.(*wp.Post)
	if !ok {
		return "", fmt.Errorf("expected *wp.Post for %s, got %T", abstractType, value)
	}
	v, found := s.registry.ResolveType(ctx, p)
	if !found {
		return "", nil
	}
	return v.Name, nil
}

// SerializeLeafValue converts resolved scalar and enum values to their JSON
// form.
func (s *Schema) SerializeLeafValue(_ context.Context, typeName string, value any) (any, error) {
	switch typeName {
	case "String":
		if v, ok := value.(string); ok {
			return v, nil
		}
	case "ID":
		switch v := value.(type) {
		case string:
			return v, nil
		case int64:
			return strconv.FormatInt(v, 10), nil
		case int:
			return strconv.Itoa(v), nil
		}
	case "Int":
		n, ok := Args{"v": value}.Int("v")
		if !ok {
			break
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %d", n)
		}
		return int(n), nil
	case "Float":
		switch v := value.(type) {
		case float64:
			return v, nil
		case int64:
			return float64(v), nil
		case int:
			return float64(v), nil
		}
	case "Boolean":
		if v, ok := value.(bool); ok {
			return v, nil
		}
	case StatusEnum:
		if v, ok := value.(string); ok {
			if name, ok := statusName(v); ok {
				return name, nil
			}
			return nil, fmt.Errorf("Enum %q cannot represent value: %q", typeName, v)
		}
	default:
		return nil, fmt.Errorf("unknown leaf type %s", typeName)
	}
	return nil, fmt.Errorf("%s cannot represent value: %v (%T)", typeName, value, value)
}
