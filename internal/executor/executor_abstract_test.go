package executor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	executor "github.com/hanpama/wpgraph/internal/executor"
)

const nodeSDL = `
interface Node {
  id: ID!
}
interface Content {
  title: String
}
type Post implements Node & Content {
  id: ID!
  title: String
  tags: [String!]
}
type Page implements Node & Content {
  id: ID!
  title: String
  parent: Int
}
type Widget {
  id: ID!
}
union Anything = Post | Widget
type Query {
  node(id: ID!): Node
  nodes: [Node]
  anything: Anything
}
`

func nodeResolvers() map[string]executor.MockResolver {
	prop := func(name string) executor.MockResolver {
		return func(ctx context.Context, src any, args map[string]any) (any, error) {
			return src.(map[string]any)[name], nil
		}
	}
	return map[string]executor.MockResolver{
		"Post.id":     prop("id"),
		"Post.title":  prop("title"),
		"Post.tags":   prop("tags"),
		"Page.id":     prop("id"),
		"Page.title":  prop("title"),
		"Page.parent": prop("parent"),
		"Widget.id":   prop("id"),
	}
}

func TestAbstract_ResolvesConcreteType(t *testing.T) {
	rt := executor.NewMockRuntime(nodeResolvers())
	rt.SetResolver("Query", "nodes", executor.NewMockValueResolver([]any{
		map[string]any{"__typename": "Post", "id": "1", "title": "Hello", "tags": []string{"a", "b"}},
		map[string]any{"__typename": "Page", "id": "2", "title": "About", "parent": 1},
	}))
	exec := executor.NewExecutor(rt, mustBuildSchema(t, nodeSDL))

	query := `
		query {
			nodes {
				__typename
				id
				...on Content { title }
				...postFields
				...on Page { parent }
			}
		}
		fragment postFields on Post { tags }
	`
	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, query), "", nil, nil)

	assertResult(t, &executor.ExecutionResult{
		Data: map[string]any{"nodes": []any{
			map[string]any{"__typename": "Post", "id": "1", "title": "Hello", "tags": []any{"a", "b"}},
			map[string]any{"__typename": "Page", "id": "2", "title": "About", "parent": 1},
		}},
	}, got)
}

func TestAbstract_UnresolvedTypeIsNullWithError(t *testing.T) {
	rt := executor.NewMockRuntime(nodeResolvers())
	rt.SetResolver("Query", "node", executor.NewMockValueResolver(map[string]any{"id": "9"}))
	exec := executor.NewExecutor(rt, mustBuildSchema(t, nodeSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ node(id: "9") { id } }`), "", nil, nil)

	assertResult(t, &executor.ExecutionResult{
		Data: map[string]any{"node": nil},
		Errors: []executor.GraphQLError{{
			Message: "Abstract type Node could not be resolved to an Object type at runtime for field node",
			Path:    executor.Path{"node"},
		}},
	}, got)

	// No field of the unresolved value is resolved.
	calls := rt.GetCalls()
	if diff := cmp.Diff([]executor.Call{{ObjectType: "Query", Field: "node", Args: map[string]any{"id": "9"}}}, calls); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestAbstract_UnresolvedItemInList(t *testing.T) {
	rt := executor.NewMockRuntime(nodeResolvers())
	rt.SetResolver("Query", "nodes", executor.NewMockValueResolver([]any{
		map[string]any{"__typename": "Post", "id": "1"},
		map[string]any{"id": "2"},
	}))
	exec := executor.NewExecutor(rt, mustBuildSchema(t, nodeSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ nodes { id } }`), "", nil, nil)

	assertResult(t, &executor.ExecutionResult{
		Data: map[string]any{"nodes": []any{map[string]any{"id": "1"}, nil}},
		Errors: []executor.GraphQLError{{
			Message: "Abstract type Node could not be resolved to an Object type at runtime for field nodes[1]",
			Path:    executor.Path{"nodes", 1},
		}},
	}, got)
}

func TestAbstract_InvalidResolutions(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		err      error
		query    string
		message  string
	}{
		{
			name:     "not a possible type",
			typeName: "Widget",
			query:    `{ node(id: "1") { id } }`,
			message:  "Runtime Object type Widget is not a possible type for Node",
		},
		{
			name:     "not an object type",
			typeName: "Content",
			query:    `{ node(id: "1") { id } }`,
			message:  "Abstract type Node must resolve to an Object type at runtime. Got: Content",
		},
		{
			name:     "unknown type",
			typeName: "Nope",
			query:    `{ node(id: "1") { id } }`,
			message:  "Abstract type Node must resolve to an Object type at runtime. Got: Nope",
		},
		{
			name:    "resolver error",
			err:     fmt.Errorf("lookup failed"),
			query:   `{ node(id: "1") { id } }`,
			message: "lookup failed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := executor.NewMockRuntime(nodeResolvers())
			rt.SetResolver("Query", "node", executor.NewMockValueResolver(map[string]any{"id": "1"}))
			rt.SetTypeResolver(func(value any) (string, error) { return tt.typeName, tt.err })
			exec := executor.NewExecutor(rt, mustBuildSchema(t, nodeSDL))

			got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, tt.query), "", nil, nil)

			assertResult(t, &executor.ExecutionResult{
				Data:   map[string]any{"node": nil},
				Errors: []executor.GraphQLError{{Message: tt.message, Path: executor.Path{"node"}}},
			}, got)
		})
	}
}

func TestAbstract_Union(t *testing.T) {
	rt := executor.NewMockRuntime(nodeResolvers())
	rt.SetResolver("Query", "anything", executor.NewMockValueResolver(map[string]any{"__typename": "Widget", "id": "w1"}))
	exec := executor.NewExecutor(rt, mustBuildSchema(t, nodeSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ anything { __typename ... on Widget { id } ... on Post { title } } }`), "", nil, nil)

	assertResult(t, &executor.ExecutionResult{
		Data: map[string]any{"anything": map[string]any{"__typename": "Widget", "id": "w1"}},
	}, got)
}
