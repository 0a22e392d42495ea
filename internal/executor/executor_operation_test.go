package executor_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	executor "github.com/hanpama/wpgraph/internal/executor"
	"github.com/stretchr/testify/require"
)

func TestExecuteRequest_Operations(t *testing.T) {
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
		"Obj.a":       executor.NewMockValueResolver("A"),
		"Obj.b":       executor.NewMockValueResolver("B"),
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))
	doc := mustParseQuery(t, `query One { maybe { a } } query Two { maybe { b } }`)

	t.Run("selects operation by name", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), doc, "Two", nil, nil)
		assertResult(t, &executor.ExecutionResult{Data: map[string]any{"maybe": map[string]any{"b": "B"}}}, got)
	})

	t.Run("name required for multiple operations", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), doc, "", nil, nil)
		assertResult(t, &executor.ExecutionResult{
			Errors: []executor.GraphQLError{{Message: "operation name is required when the document has multiple operations"}},
		}, got)
	})

	t.Run("unknown operation", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), doc, "Three", nil, nil)
		assertResult(t, &executor.ExecutionResult{Errors: []executor.GraphQLError{{Message: "operation not found"}}}, got)
	})

	t.Run("no mutation type", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `mutation { maybe { a } }`), "", nil, nil)
		assertResult(t, &executor.ExecutionResult{Errors: []executor.GraphQLError{{Message: "root type not found for mutation operation"}}}, got)
	})

	t.Run("subscriptions unsupported", func(t *testing.T) {
		got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `subscription { maybe { a } }`), "", nil, nil)
		assertResult(t, &executor.ExecutionResult{Errors: []executor.GraphQLError{{Message: "subscriptions are not supported"}}}, got)
	})
}

func TestExecuteRequest_Directives(t *testing.T) {
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
		"Obj.a":       executor.NewMockValueResolver("A"),
		"Obj.b":       executor.NewMockValueResolver("B"),
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))
	doc := mustParseQuery(t, `query($withB: Boolean!) { maybe { a @skip(if: true) b @include(if: $withB) x: a @include(if: true) } }`)

	got := exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"withB": false}, nil)
	assertResult(t, &executor.ExecutionResult{Data: map[string]any{"maybe": map[string]any{"x": "A"}}}, got)

	got = exec.ExecuteRequest(context.Background(), doc, "", map[string]any{"withB": true}, nil)
	assertResult(t, &executor.ExecutionResult{Data: map[string]any{"maybe": map[string]any{"b": "B", "x": "A"}}}, got)
}

func TestExecuteRequest_ResolutionOrder(t *testing.T) {
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.maybe": executor.NewMockValueResolver(map[string]any{"k": 1}),
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))

	got := exec.ExecuteRequest(context.Background(), mustParseQuery(t, `{ maybe { b a: b __typename } }`), "", nil, "root")
	assertResult(t, &executor.ExecutionResult{
		Data: map[string]any{"maybe": map[string]any{"b": nil, "a": nil, "__typename": "Obj"}},
	}, got)

	want := []executor.Call{
		{ObjectType: "Query", Field: "maybe", Source: "root", Args: map[string]any{}},
		{ObjectType: "Obj", Field: "b", Source: map[string]any{"k": 1}, Args: map[string]any{}},
		{ObjectType: "Obj", Field: "b", Source: map[string]any{"k": 1}, Args: map[string]any{}},
	}
	if diff := cmp.Diff(want, rt.GetCalls()); diff != "" {
		t.Fatalf("calls mismatch (-want +got):\n%s", diff)
	}
}

func TestExecuteRequest_CanceledContext(t *testing.T) {
	rt := executor.NewMockRuntime(map[string]executor.MockResolver{
		"Query.maybe": executor.NewMockValueResolver(map[string]any{}),
	})
	exec := executor.NewExecutor(rt, mustBuildSchema(t, objSDL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := exec.ExecuteRequest(ctx, mustParseQuery(t, `{ maybe { b } }`), "", nil, nil)
	require.Equal(t, map[string]any{"maybe": nil}, got.Data)
	require.Len(t, got.Errors, 1)
	require.Equal(t, context.Canceled.Error(), got.Errors[0].Message)
	require.Empty(t, rt.GetCalls())
}
