package wp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPermalinks(t *testing.T) {
	pages := map[int64]*Post{
		1: {ID: 1, PostType: "page", PostName: "company"},
		2: {ID: 2, PostType: "page", PostName: "about", PostParent: 1},
		3: {ID: 3, PostType: "page", PostName: "team", PostParent: 2},
	}
	lookup := func(ctx context.Context, id int64) (*Post, error) { return pages[id], nil }
	hello := &Post{ID: 7, PostType: "post", PostName: "hello-world", PostDate: "2024-03-09 14:05:07"}

	tests := []struct {
		name string
		pl   Permalinks
		post *Post
		want string
	}{
		{"plain", Permalinks{Home: "https://example.com/"}, hello, "https://example.com/?p=7"},
		{"date and name", Permalinks{Home: "https://example.com", Structure: "/%year%/%monthnum%/%day%/%postname%/"}, hello, "https://example.com/2024/03/09/hello-world/"},
		{"id", Permalinks{Home: "https://example.com", Structure: "/archives/%post_id%"}, hello, "https://example.com/archives/7"},
		{"time", Permalinks{Home: "https://example.com", Structure: "/%hour%-%minute%-%second%/%postname%"}, hello, "https://example.com/14-05-07/hello-world"},
		{"no slug", Permalinks{Home: "https://example.com", Structure: "/%postname%/"}, &Post{ID: 8, PostType: "post"}, "https://example.com/?p=8"},
		{"nested page", Permalinks{Home: "https://example.com", Structure: "/%postname%/"}, pages[3], "https://example.com/company/about/team/"},
		{"top page", Permalinks{Home: "https://example.com", Structure: "/%postname%"}, pages[1], "https://example.com/company"},
		{"attachment", Permalinks{Home: "https://example.com", Structure: "/%postname%/"}, &Post{ID: 9, PostType: "attachment", PostName: "logo"}, "https://example.com/?p=9"},
		{"custom type", Permalinks{Home: "https://example.com", Structure: "/%postname%/"}, &Post{ID: 10, PostType: "product", PostName: "mug"}, "https://example.com/?p=10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.pl.Link(context.Background(), tt.post, lookup)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPermalinks_PageErrors(t *testing.T) {
	pl := Permalinks{Home: "https://example.com", Structure: "/%postname%/"}

	cyclic := map[int64]*Post{
		1: {ID: 1, PostType: "page", PostName: "a", PostParent: 2},
		2: {ID: 2, PostType: "page", PostName: "b", PostParent: 1},
	}
	_, err := pl.Link(context.Background(), cyclic[1], func(ctx context.Context, id int64) (*Post, error) { return cyclic[id], nil })
	require.Error(t, err)

	boom := errors.New("boom")
	_, err = pl.Link(context.Background(), &Post{ID: 5, PostType: "page", PostName: "x", PostParent: 4}, func(ctx context.Context, id int64) (*Post, error) { return nil, boom })
	require.ErrorIs(t, err, boom)

	got, err := pl.Link(context.Background(), &Post{ID: 5, PostType: "page", PostName: "orphan", PostParent: 4}, func(ctx context.Context, id int64) (*Post, error) { return nil, nil })
	require.NoError(t, err)
	require.Equal(t, "https://example.com/orphan/", got)
}
