package executor_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	executor "github.com/hanpama/wpgraph/internal/executor"
	"github.com/stretchr/testify/require"
)

const objSDL = `
type Query {
  obj: Obj!
  maybe: Obj
  list: [Obj]
  strictList: [Obj!]
}
type Obj {
  a: String!
  b: String
}
`

// Pattern: Result comparison
func TestCompleteValue_NonNull_Propagation_Result(t *testing.T) {
	t.Run("Resolver error", func(t *testing.T) {
		rt := executor.NewMockRuntime(map[string]executor.MockResolver{
			"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
			"Obj.a":       executor.NewMockErrorResolver(fmt.Errorf("boom")),
			"Obj.b":       executor.NewMockValueResolver("B"),
		})
		exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ maybe { a b } }"), "", nil, nil)

		assertResult(t, &executor.ExecutionResult{
			Data:   map[string]any{"maybe": nil},
			Errors: []executor.GraphQLError{{Message: "boom", Path: executor.Path{"maybe", "a"}}},
		}, got)
	})

	t.Run("Resolver returns null", func(t *testing.T) {
		rt := executor.NewMockRuntime(map[string]executor.MockResolver{
			"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
			"Obj.a":       executor.NewMockValueResolver(nil),
		})
		exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ maybe { a } }"), "", nil, nil)

		assertResult(t, &executor.ExecutionResult{
			Data: map[string]any{"maybe": nil},
			Errors: []executor.GraphQLError{
				{Message: "Cannot return null for non-nullable field maybe.a", Path: executor.Path{"maybe", "a"}},
			},
		}, got)
	})

	t.Run("Root non-null nullifies data", func(t *testing.T) {
		rt := executor.NewMockRuntime(map[string]executor.MockResolver{
			"Query.obj":   executor.NewMockValueResolver(map[string]any{}),
			"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
			"Obj.a":       executor.NewMockValueResolver(nil),
		})
		exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ obj { a } }"), "", nil, nil)

		assertResult(t, &executor.ExecutionResult{
			Data: nil,
			Errors: []executor.GraphQLError{
				{Message: "Cannot return null for non-nullable field obj.a", Path: executor.Path{"obj", "a"}},
			},
		}, got)
	})

	t.Run("Non-null list item nullifies list", func(t *testing.T) {
		rt := executor.NewMockRuntime(map[string]executor.MockResolver{
			"Query.strictList": executor.NewMockValueResolver([]any{map[string]any{"a": "x"}, nil}),
			"Obj.a": func(ctx context.Context, src any, args map[string]any) (any, error) {
				return src.(map[string]any)["a"], nil
			},
		})
		exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ strictList { a } }"), "", nil, nil)

		assertResult(t, &executor.ExecutionResult{
			Data: map[string]any{"strictList": nil},
			Errors: []executor.GraphQLError{
				{Message: "Cannot return null for non-nullable field strictList[1]", Path: executor.Path{"strictList", 1}},
			},
		}, got)
	})
}

func TestCompleteValue_Lists(t *testing.T) {
	type row struct{ A string }
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.list": executor.NewMockValueResolver([]*row{{A: "one"}, nil, {A: "two"}}),
		"Obj.a": func(ctx context.Context, src any, args map[string]any) (any, error) {
			return src.(*row).A, nil
		},
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ list { a } }"), "", nil, nil)
	assertResult(t, &executor.ExecutionResult{
		Data: map[string]any{"list": []any{
			map[string]any{"a": "one"},
			nil,
			map[string]any{"a": "two"},
		}},
	}, got)

	t.Run("nil slice is an empty list", func(t *testing.T) {
		rt := executor.NewMockRuntime(map[string]executor.MockResolver{
			"Query.list": executor.NewMockValueResolver([]*row(nil)),
		})
		exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ list { a } }"), "", nil, nil)
		require.Empty(t, got.Errors)
		require.Equal(t, []any{}, got.Data.(map[string]any)["list"])
	})

	t.Run("non-list value", func(t *testing.T) {
		rt := executor.NewMockRuntime(map[string]executor.MockResolver{
			"Query.list": executor.NewMockValueResolver("nope"),
		})
		exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ list { a } }"), "", nil, nil)
		assertResult(t, &executor.ExecutionResult{
			Data:   map[string]any{"list": nil},
			Errors: []executor.GraphQLError{{Message: "Expected list value, got string", Path: executor.Path{"list"}}},
		}, got)
	})
}

func TestCompleteValue_ErrorLocations(t *testing.T) {
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
		"Obj.b":       executor.NewMockErrorResolver(fmt.Errorf("boom")),
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{\n  maybe {\n    b\n  }\n}"), "", nil, nil)

	want := &executor.ExecutionResult{
		Data: map[string]any{"maybe": map[string]any{"b": nil}},
		Errors: []executor.GraphQLError{{
			Message:   "boom",
			Locations: []executor.Location{{Line: 3, Column: 5}},
			Path:      executor.Path{"maybe", "b"},
		}},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("ExecutionResult mismatch (-want +got):\n%s", diff)
	}
}

func TestCompleteValue_LeafSerialization(t *testing.T) {
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
		"Obj.a":       executor.NewMockValueResolver("raw"),
		"Obj.b":       executor.NewMockValueResolver("bad"),
	})
	rt.SetSerializer(func(typeName string, val any) (any, error) {
		if val == "bad" {
			return nil, fmt.Errorf("cannot serialize %v as %s", val, typeName)
		}
		return fmt.Sprintf("%s:%v", typeName, val), nil
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, "{ maybe { a b } }"), "", nil, nil)
	assertResult(t, &executor.ExecutionResult{
		Data:   map[string]any{"maybe": map[string]any{"a": "String:raw", "b": nil}},
		Errors: []executor.GraphQLError{{Message: "cannot serialize bad as String", Path: executor.Path{"maybe", "b"}}},
	}, got)
}
