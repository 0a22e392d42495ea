// Package wpdb implements wp.Host over WordPress content tables stored in
// PostgreSQL.
package wpdb

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	wp "github.com/hanpama/wpgraph/internal/wp"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of *pgxpool.Pool the host needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Options struct {
	// TablePrefix is prepended to every table name, "wp_" on most sites.
	TablePrefix string

	// Taxonomies lists taxonomies that are valid even without stored terms.
	Taxonomies []string

	Permalinks wp.Permalinks
}

type Host struct {
	db         Querier
	pool       *pgxpool.Pool
	links      wp.Permalinks
	taxonomies map[string]bool
	tables     tables
}

var _ wp.Host = (*Host)(nil)

type tables struct {
	posts, terms, termTaxonomy, termRelationships string
}

var validPrefix = regexp.MustCompile(`^[A-Za-z0-9_]*$`)

// New returns a host reading through db.
func New(db Querier, opts Options) (*Host, error) {
	if !validPrefix.MatchString(opts.TablePrefix) {
		return nil, fmt.Errorf("wpdb: invalid table prefix %q", opts.TablePrefix)
	}
	h := &Host{
		db:         db,
		links:      opts.Permalinks,
		taxonomies: map[string]bool{"category": true, "post_tag": true, "post_format": true},
		tables: tables{
			posts:             pgx.Identifier{opts.TablePrefix + "posts"}.Sanitize(),
			terms:             pgx.Identifier{opts.TablePrefix + "terms"}.Sanitize(),
			termTaxonomy:      pgx.Identifier{opts.TablePrefix + "term_taxonomy"}.Sanitize(),
			termRelationships: pgx.Identifier{opts.TablePrefix + "term_relationships"}.Sanitize(),
		},
	}
	for _, t := range opts.Taxonomies {
		h.taxonomies[t] = true
	}
	return h, nil
}

// Open connects a pool to dsn and returns a host that owns it.
func Open(ctx context.Context, dsn string, opts Options) (*Host, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("wpdb: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("wpdb: ping: %w", err)
	}
	h, err := New(pool, opts)
	if err != nil {
		pool.Close()
		return nil, err
	}
	h.pool = pool
	return h, nil
}

// Close releases the pool opened by Open.
func (h *Host) Close() {
	if h.pool != nil {
		h.pool.Close()
	}
}

const postColumns = `id, post_author, post_name, post_title, post_content, post_excerpt,
	post_status, post_password, post_parent, post_date, post_date_gmt,
	post_modified, post_modified_gmt, comment_count, menu_order, guid,
	post_type, post_mime_type`

func (h *Host) GetPost(ctx context.Context, id int64) (*wp.Post, error) {
	sql := `SELECT ` + postColumns + ` FROM ` + h.tables.posts + ` WHERE id = $1`
	p, err := scanPost(h.db.QueryRow(ctx, sql, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("wpdb: post %d: %w", id, err)
	}
	return p, nil
}

func (h *Host) GetChildren(ctx context.Context, parentID int64, postType string) ([]*wp.Post, error) {
	sql := `SELECT ` + postColumns + ` FROM ` + h.tables.posts + `
		WHERE post_parent = $1 AND ($2 = '' OR post_type = $2)
		ORDER BY menu_order, post_title COLLATE "C", id`

	rows, err := h.db.Query(ctx, sql, parentID, postType)
	if err != nil {
		return nil, fmt.Errorf("wpdb: children of %d: %w", parentID, err)
	}
	defer rows.Close()

	posts := make([]*wp.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("wpdb: children of %d: %w", parentID, err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wpdb: children of %d: %w", parentID, err)
	}
	return posts, nil
}

// termOrder maps normalized orderby keys onto ORDER BY expressions. Keys are
// never interpolated from input.
var termOrder = map[string]string{
	wp.OrderByName:        `lower(t.name) COLLATE "C" %[1]s, t.name COLLATE "C" %[1]s`,
	wp.OrderBySlug:        `t.slug COLLATE "C" %[1]s`,
	wp.OrderByTermGroup:   `t.term_group %[1]s`,
	wp.OrderByTermID:      `t.term_id %[1]s`,
	wp.OrderByDescription: `lower(tt.description) COLLATE "C" %[1]s, tt.description COLLATE "C" %[1]s`,
	wp.OrderByCount:       `tt.count %[1]s`,
}

func termOrderClause(q wp.TermQuery) string {
	q = q.Normalize()
	expr, ok := termOrder[q.OrderBy]
	if !ok {
		return "t.term_id ASC"
	}
	dir := "ASC"
	if q.Order == "DESC" {
		dir = "DESC"
	}
	return fmt.Sprintf(expr, dir) + ", t.term_id ASC"
}

func (h *Host) GetPostTerms(ctx context.Context, postID int64, q wp.TermQuery) ([]*wp.Term, error) {
	q = q.Normalize()
	known, err := h.knownTaxonomy(ctx, q.Taxonomy)
	if err != nil {
		return nil, err
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", wp.ErrInvalidTaxonomy, q.Taxonomy)
	}

	sql := `SELECT t.term_id, t.name, t.slug, t.term_group, tt.term_taxonomy_id,
			tt.taxonomy, tt.description, tt.parent, tt.count
		FROM ` + h.tables.terms + ` t
		JOIN ` + h.tables.termTaxonomy + ` tt ON tt.term_id = t.term_id
		JOIN ` + h.tables.termRelationships + ` tr ON tr.term_taxonomy_id = tt.term_taxonomy_id
		WHERE tr.object_id = $1 AND tt.taxonomy = $2
		ORDER BY ` + termOrderClause(q)

	rows, err := h.db.Query(ctx, sql, postID, q.Taxonomy)
	if err != nil {
		return nil, fmt.Errorf("wpdb: terms of %d: %w", postID, err)
	}
	defer rows.Close()

	terms := make([]*wp.Term, 0)
	for rows.Next() {
		var t wp.Term
		err := rows.Scan(&t.TermID, &t.Name, &t.Slug, &t.TermGroup, &t.TermTaxonomyID,
			&t.Taxonomy, &t.Description, &t.Parent, &t.Count)
		if err != nil {
			return nil, fmt.Errorf("wpdb: terms of %d: %w", postID, err)
		}
		terms = append(terms, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("wpdb: terms of %d: %w", postID, err)
	}
	return terms, nil
}

func (h *Host) knownTaxonomy(ctx context.Context, taxonomy string) (bool, error) {
	if h.taxonomies[taxonomy] {
		return true, nil
	}
	sql := `SELECT EXISTS (SELECT 1 FROM ` + h.tables.termTaxonomy + ` WHERE taxonomy = $1)`
	var exists bool
	if err := h.db.QueryRow(ctx, sql, taxonomy).Scan(&exists); err != nil {
		return false, fmt.Errorf("wpdb: taxonomy %q: %w", taxonomy, err)
	}
	return exists, nil
}

func (h *Host) Permalink(ctx context.Context, p *wp.Post) (string, error) {
	return h.links.Link(ctx, p, h.GetPost)
}

func scanPost(row pgx.Row) (*wp.Post, error) {
	var (
		p                                    wp.Post
		date, dateGMT, modified, modifiedGMT *time.Time
	)
	err := row.Scan(&p.ID, &p.PostAuthor, &p.PostName, &p.PostTitle, &p.PostContent, &p.PostExcerpt,
		&p.PostStatus, &p.PostPassword, &p.PostParent, &date, &dateGMT,
		&modified, &modifiedGMT, &p.CommentCount, &p.MenuOrder, &p.GUID,
		&p.PostType, &p.PostMimeType)
	if err != nil {
		return nil, err
	}
	p.PostDate = formatTimestamp(date)
	p.PostDateGMT = formatTimestamp(dateGMT)
	p.PostModified = formatTimestamp(modified)
	p.PostModifiedGMT = formatTimestamp(modifiedGMT)
	return &p, nil
}

// formatTimestamp renders a timestamp column in the stored post date layout.
// NULL stands for the zero date.
func formatTimestamp(t *time.Time) string {
	if t == nil {
		return wp.ZeroDate
	}
	return t.Format(wp.DateLayout)
}
