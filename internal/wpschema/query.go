package wpschema

import (
	"context"
	"fmt"

	schema "github.com/hanpama/wpgraph/internal/schema"
)

// QueryFields returns the root fields of the schema.
func QueryFields(env Env) []FieldDescriptor {
	return []FieldDescriptor{
		{
			Name:        "post",
			Type:        postType,
			Description: "Fetch a post of any type by its database ID",
			Args: []ArgumentDescriptor{
				{Name: "ID", Type: schema.NonNullType(intType)},
			},
			Resolve: func(ctx context.Context, _ any, args Args) (any, error) {
				id, _ := args.Int("ID")
				return fetchPost(ctx, env, id)
			},
		},
		{
			Name:        "node",
			Type:        postType,
			Description: "Fetch a post by its global id",
			Args: []ArgumentDescriptor{
				{Name: "id", Type: schema.NonNullType(schema.NamedType("ID"))},
			},
			Resolve: func(ctx context.Context, _ any, args Args) (any, error) {
				typeName, id, ok := ParseGlobalID(args.String("id"))
				if !ok || typeName != PostInterface {
					return nil, nil
				}
				return fetchPost(ctx, env, id)
			},
		},
		{
			Name:        "children",
			Type:        postListType,
			Description: "List the posts below a parent, ordered by menu_order and title",
			Args: []ArgumentDescriptor{
				{Name: "parent", Type: schema.NonNullType(intType)},
				{Name: "post_type", Type: stringType, Description: "Only list children of this post type"},
			},
			Resolve: func(ctx context.Context, _ any, args Args) (any, error) {
				parent, _ := args.Int("parent")
				return children(ctx, env, parent, args.String("post_type")), nil
			},
		},
	}
}

func fetchPost(ctx context.Context, env Env, id int64) (any, error) {
	p, err := env.Host.GetPost(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post %d: %w", id, err)
	}
	if p == nil {
		return nil, nil
	}
	return p, nil
}
