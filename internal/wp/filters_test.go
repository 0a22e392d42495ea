package wp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilters_Order(t *testing.T) {
	f := NewFilters()
	appendTag := func(tag string) FilterFunc {
		return func(_ context.Context, v string, _ *Post) string { return v + tag }
	}
	f.Add("x", 20, appendTag("c"))
	f.Add("x", 10, appendTag("a"))
	f.Add("x", 10, appendTag("b"))
	f.Add("y", 1, appendTag("!"))

	require.Equal(t, "-abc", f.Apply(context.Background(), "x", "-", nil))
	require.Equal(t, "-!", f.Apply(context.Background(), "y", "-", nil))
	require.Equal(t, "-", f.Apply(context.Background(), "z", "-", nil))
}

func TestFilters_Nil(t *testing.T) {
	var f *Filters
	require.Equal(t, "v", f.Apply(context.Background(), FilterContent, "v", nil))
}

func TestFilters_ReceivesPost(t *testing.T) {
	f := NewFilters()
	f.Add(FilterTitle, 10, func(_ context.Context, v string, p *Post) string {
		return v + " (" + p.PostType + ")"
	})
	p := &Post{PostType: "page", PostTitle: "About"}
	require.Equal(t, "About (page)", f.Apply(context.Background(), FilterTitle, p.PostTitle, p))
	require.Equal(t, "About", p.PostTitle)
}

func TestDefaultFilters(t *testing.T) {
	f := DefaultFilters()
	ctx := context.Background()
	require.Equal(t, "Hello", f.Apply(ctx, FilterTitle, "  Hello ", nil))
	require.Equal(t, "<p>Body</p>\n", f.Apply(ctx, FilterContent, "Body", nil))
	require.Equal(t, "", f.Apply(ctx, FilterExcerpt, "", nil))
}
