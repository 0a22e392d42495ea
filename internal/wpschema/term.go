package wpschema

import (
	"context"
	"fmt"

	schema "github.com/hanpama/wpgraph/internal/schema"
	"github.com/hanpama/wpgraph/internal/wp"
)

// TermFields returns the fields of the WP_Term type.
func TermFields() []FieldDescriptor {
	return []FieldDescriptor{
		{
			Name:        "id",
			Type:        schema.NonNullType(schema.NamedType("ID")),
			Description: "The ID of an object",
			Resolve: termResolver(func(t *wp.Term) any {
				return GlobalID(TermType, t.TermID)
			}),
		},
		termField("term_id", intType, "The ID of the term", func(t *wp.Term) any { return t.TermID }),
		termField("name", stringType, "The name of the term", func(t *wp.Term) any { return t.Name }),
		termField("slug", stringType, "The URL friendly name of the term", func(t *wp.Term) any { return t.Slug }),
		termField("term_group", intType, "", func(t *wp.Term) any { return t.TermGroup }),
		termField("term_taxonomy_id", intType, "", func(t *wp.Term) any { return t.TermTaxonomyID }),
		termField("taxonomy", stringType, "The taxonomy the term belongs to", func(t *wp.Term) any { return t.Taxonomy }),
		termField("description", stringType, "", func(t *wp.Term) any { return t.Description }),
		termField("parent", intType, "The term_id of the parent term", func(t *wp.Term) any { return t.Parent }),
		termField("count", intType, "Number of objects using the term", func(t *wp.Term) any { return t.Count }),
	}
}

func termField(name string, typ *schema.TypeRef, description string, get func(*wp.Term) any) FieldDescriptor {
	return FieldDescriptor{Name: name, Type: typ, Description: description, Resolve: termResolver(get)}
}

func termResolver(get func(*wp.Term) any) Resolver {
	return func(_ context.Context, source any, _ Args) (any, error) {
		t, ok := source.(*wp.Term)
		if !ok || t == nil {
			return nil, fmt.Errorf("expected *wp.Term source, got %T", source)
		}
		return get(t), nil
	}
}
