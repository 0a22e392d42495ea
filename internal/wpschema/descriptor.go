package wpschema

import (
	"context"
	"math"

	schema "github.com/hanpama/wpgraph/internal/schema"
)

// Resolver computes one field value from its source object. Resolvers must not
// modify source or args.
type Resolver func(ctx context.Context, source any, args Args) (any, error)

// Args holds the coerced arguments of one field invocation. Arguments that
// were omitted and declare no default are absent.
type Args map[string]any

// String returns the named string argument, or "" when it is absent or null.
func (a Args) String(name string) string {
	s, _ := a[name].(string)
	return s
}

// Bool returns the named boolean argument, or false when it is absent or null.
func (a Args) Bool(name string) bool {
	b, _ := a[name].(bool)
	return b
}

// Int returns the named integer argument.
func (a Args) Int(name string) (int64, bool) {
	switch v := a[name].(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if v == math.Trunc(v) {
			return int64(v), true
		}
	}
	return 0, false
}

// FieldDescriptor declares one output field.
type FieldDescriptor struct {
	Name        string
	Type        *schema.TypeRef
	Description string
	Args        []ArgumentDescriptor
	Resolve     Resolver
}

// ArgumentDescriptor declares one optional field argument. A nil Default
// declares no default value.
type ArgumentDescriptor struct {
	Name        string
	Type        *schema.TypeRef
	Description string
	Default     any
}

// Variant is a concrete object type implementing WP_Post, selected for the
// records whose post_type camelizes to Name.
type Variant struct {
	Name        string
	PostType    string
	Description string
	Fields      []FieldDescriptor
}

// Field returns the descriptor of the named field, or nil.
func (v *Variant) Field(name string) *FieldDescriptor {
	for i := range v.Fields {
		if v.Fields[i].Name == name {
			return &v.Fields[i]
		}
	}
	return nil
}

func (d FieldDescriptor) definition() *schema.Field {
	f := schema.NewField(d.Name, d.Description, d.Type)
	for _, a := range d.Args {
		arg := schema.NewInputValue(a.Name, a.Description, a.Type)
		if a.Default != nil {
			arg.SetDefault(a.Default)
		}
		f.AddArgument(arg)
	}
	return f
}
