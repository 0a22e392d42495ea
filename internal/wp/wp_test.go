package wp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTermQueryNormalize(t *testing.T) {
	tests := []struct {
		in   TermQuery
		want TermQuery
	}{
		{TermQuery{}, TermQuery{Taxonomy: "post_tag", OrderBy: "name", Order: "ASC"}},
		{TermQuery{Taxonomy: "category", OrderBy: "slug", Order: "desc"}, TermQuery{Taxonomy: "category", OrderBy: "slug", Order: "DESC"}},
		{TermQuery{OrderBy: "ID", Order: "Desc "}, TermQuery{Taxonomy: "post_tag", OrderBy: "term_id", Order: "DESC"}},
		{TermQuery{OrderBy: "random", Order: "sideways"}, TermQuery{Taxonomy: "post_tag", OrderBy: "name", Order: "ASC"}},
		{TermQuery{OrderBy: "none"}, TermQuery{Taxonomy: "post_tag", OrderBy: "none", Order: "ASC"}},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.in.Normalize(), "input %+v", tt.in)
	}
}

func TestSortTerms(t *testing.T) {
	terms := func() []*Term {
		return []*Term{
			{TermID: 3, Name: "beta", Slug: "b", Count: 1},
			{TermID: 1, Name: "Alpha", Slug: "c", Count: 5},
			{TermID: 2, Name: "alpha", Slug: "a", Count: 5},
			{TermID: 4, Name: "gamma", Slug: "d", Count: 0},
		}
	}
	ids := func(ts []*Term) []int64 {
		out := make([]int64, len(ts))
		for i, term := range ts {
			out[i] = term.TermID
		}
		return out
	}

	tests := []struct {
		q    TermQuery
		want []int64
	}{
		{TermQuery{}, []int64{1, 2, 3, 4}},
		{TermQuery{Order: "DESC"}, []int64{4, 3, 2, 1}},
		{TermQuery{OrderBy: "slug"}, []int64{2, 3, 1, 4}},
		{TermQuery{OrderBy: "count", Order: "DESC"}, []int64{1, 2, 3, 4}},
		{TermQuery{OrderBy: "none", Order: "DESC"}, []int64{1, 2, 3, 4}},
		{TermQuery{OrderBy: "term_id", Order: "DESC"}, []int64{4, 3, 2, 1}},
	}
	for _, tt := range tests {
		got := terms()
		SortTerms(got, tt.q)
		if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
			t.Errorf("SortTerms(%+v) mismatch (-want +got):\n%s", tt.q, diff)
		}

		again := terms()
		SortTerms(again, tt.q)
		require.Equal(t, ids(got), ids(again))
	}
}

func TestSortChildren(t *testing.T) {
	posts := []*Post{
		{ID: 4, MenuOrder: 1, PostTitle: "A"},
		{ID: 3, MenuOrder: 0, PostTitle: "B"},
		{ID: 2, MenuOrder: 0, PostTitle: "B"},
		{ID: 1, MenuOrder: 0, PostTitle: "Z"},
	}
	SortChildren(posts)
	var got []int64
	for _, p := range posts {
		got = append(got, p.ID)
	}
	require.Equal(t, []int64{2, 3, 1, 4}, got)
}

func TestPostTitle(t *testing.T) {
	require.Equal(t, "Hello", (&Post{PostTitle: "Hello", PostStatus: "publish"}).Title())
	require.Equal(t, "Protected: Hello", (&Post{PostTitle: "Hello", PostPassword: "s3cret", PostStatus: "private"}).Title())
	require.Equal(t, "Private: Hello", (&Post{PostTitle: "Hello", PostStatus: "private"}).Title())
}
