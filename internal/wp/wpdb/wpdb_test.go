package wpdb

import (
	"context"
	"errors"
	"strings"
	"testing"

	wp "github.com/hanpama/wpgraph/internal/wp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestNew_TablePrefix(t *testing.T) {
	h, err := New(nil, Options{TablePrefix: "wp_"})
	require.NoError(t, err)
	require.Equal(t, `"wp_posts"`, h.tables.posts)
	require.Equal(t, `"wp_term_relationships"`, h.tables.termRelationships)

	_, err = New(nil, Options{TablePrefix: `wp"; DROP TABLE x; --`})
	require.Error(t, err)
}

func TestTermOrderClause(t *testing.T) {
	tests := []struct {
		q    wp.TermQuery
		want string
	}{
		{wp.TermQuery{}, `lower(t.name) COLLATE "C" ASC, t.name COLLATE "C" ASC, t.term_id ASC`},
		{wp.TermQuery{OrderBy: "count", Order: "desc"}, `tt.count DESC, t.term_id ASC`},
		{wp.TermQuery{OrderBy: "id", Order: "DESC"}, `t.term_id DESC, t.term_id ASC`},
		{wp.TermQuery{OrderBy: "none", Order: "DESC"}, `t.term_id ASC`},
		{wp.TermQuery{OrderBy: "name; DROP TABLE wp_terms", Order: "ASC; --"}, `lower(t.name) COLLATE "C" ASC, t.name COLLATE "C" ASC, t.term_id ASC`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, termOrderClause(tt.q), "%+v", tt.q)
	}
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

// fakeQuerier answers QueryRow with row and fails everything else.
type fakeQuerier struct {
	row     pgx.Row
	queries []string
}

func (f *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errors.New("unexpected Exec")
}

func (f *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	f.queries = append(f.queries, sql)
	return nil, errors.New("unexpected Query")
}

func (f *fakeQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, sql)
	return f.row
}

func TestGetPost_NotFound(t *testing.T) {
	db := &fakeQuerier{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
	h, err := New(db, Options{TablePrefix: "wp_"})
	require.NoError(t, err)

	p, err := h.GetPost(context.Background(), 42)
	require.NoError(t, err)
	require.Nil(t, p)
	require.Len(t, db.queries, 1)
	require.Contains(t, db.queries[0], `FROM "wp_posts" WHERE id = $1`)
}

func TestGetPost_Error(t *testing.T) {
	boom := errors.New("connection reset")
	db := &fakeQuerier{row: fakeRow{scan: func(...any) error { return boom }}}
	h, _ := New(db, Options{})

	_, err := h.GetPost(context.Background(), 42)
	require.ErrorIs(t, err, boom)
}

func TestGetPostTerms_UnknownTaxonomy(t *testing.T) {
	db := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*bool) = false
		return nil
	}}}
	h, _ := New(db, Options{TablePrefix: "wp_"})

	_, err := h.GetPostTerms(context.Background(), 1, wp.TermQuery{Taxonomy: "nope"})
	require.ErrorIs(t, err, wp.ErrInvalidTaxonomy)
	require.Len(t, db.queries, 1)
	require.True(t, strings.HasPrefix(db.queries[0], `SELECT EXISTS (SELECT 1 FROM "wp_term_taxonomy"`))
}

func TestGetPostTerms_ConfiguredTaxonomySkipsLookup(t *testing.T) {
	db := &fakeQuerier{}
	h, _ := New(db, Options{Taxonomies: []string{"genre"}})

	_, err := h.GetPostTerms(context.Background(), 1, wp.TermQuery{Taxonomy: "genre"})
	require.Error(t, err)
	require.Len(t, db.queries, 1)
	require.Contains(t, db.queries[0], "ORDER BY lower(t.name)")
}

func TestFormatTimestamp(t *testing.T) {
	require.Equal(t, wp.ZeroDate, formatTimestamp(nil))
}
