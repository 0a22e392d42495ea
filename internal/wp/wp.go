// Package wp models the WordPress content a GraphQL schema is served from:
// posts, taxonomy terms, and the host functions that render and relate them.
package wp

import (
	"context"
	"errors"
	"strings"
)

// ErrInvalidTaxonomy is returned by a Host for taxonomies it does not know.
var ErrInvalidTaxonomy = errors.New("wp: invalid taxonomy")

// Post is a read-only view of one wp_posts row.
type Post struct {
	ID              int64  `yaml:"ID"`
	PostAuthor      int64  `yaml:"post_author"`
	PostName        string `yaml:"post_name"`
	PostTitle       string `yaml:"post_title"`
	PostContent     string `yaml:"post_content"`
	PostExcerpt     string `yaml:"post_excerpt"`
	PostStatus      string `yaml:"post_status"`
	PostPassword    string `yaml:"post_password"`
	PostParent      int64  `yaml:"post_parent"`
	PostDate        string `yaml:"post_date"`
	PostDateGMT     string `yaml:"post_date_gmt"`
	PostModified    string `yaml:"post_modified"`
	PostModifiedGMT string `yaml:"post_modified_gmt"`
	CommentCount    int64  `yaml:"comment_count"`
	MenuOrder       int64  `yaml:"menu_order"`
	GUID            string `yaml:"guid"`
	PostType        string `yaml:"post_type"`
	PostMimeType    string `yaml:"post_mime_type"`
}

// Title returns the post title the way it is shown to readers, with the
// protected and private prefixes applied.
func (p *Post) Title() string {
	switch {
	case p.PostPassword != "":
		return "Protected: " + p.PostTitle
	case p.PostStatus == "private":
		return "Private: " + p.PostTitle
	default:
		return p.PostTitle
	}
}

// Term is one taxonomy term as attached to a post.
type Term struct {
	TermID         int64  `yaml:"term_id"`
	Name           string `yaml:"name"`
	Slug           string `yaml:"slug"`
	TermGroup      int64  `yaml:"term_group"`
	TermTaxonomyID int64  `yaml:"term_taxonomy_id"`
	Taxonomy       string `yaml:"taxonomy"`
	Description    string `yaml:"description"`
	Parent         int64  `yaml:"parent"`
	Count          int64  `yaml:"count"`
}

// Host is the content runtime posts are read from.
//
// GetPost returns (nil, nil) when no post has the given ID. GetChildren orders
// its result by menu_order, then post_title, then ID.
type Host interface {
	GetPost(ctx context.Context, id int64) (*Post, error)
	GetChildren(ctx context.Context, parentID int64, postType string) ([]*Post, error)
	GetPostTerms(ctx context.Context, postID int64, q TermQuery) ([]*Term, error)
	Permalink(ctx context.Context, p *Post) (string, error)
}

// Term orderings accepted by TermQuery.OrderBy after normalization.
const (
	OrderByName        = "name"
	OrderBySlug        = "slug"
	OrderByTermGroup   = "term_group"
	OrderByTermID      = "term_id"
	OrderByDescription = "description"
	OrderByCount       = "count"
	OrderByNone        = "none"
)

// DefaultTaxonomy is queried when TermQuery.Taxonomy is empty.
const DefaultTaxonomy = "post_tag"

// TermQuery selects and orders the terms of one post.
type TermQuery struct {
	Taxonomy string
	OrderBy  string
	Order    string
}

// Normalize applies defaults: the post_tag taxonomy, name ordering for empty
// or unknown keys, and ASC for any order other than DESC.
func (q TermQuery) Normalize() TermQuery {
	out := TermQuery{Taxonomy: q.Taxonomy, OrderBy: OrderByName, Order: "ASC"}
	if out.Taxonomy == "" {
		out.Taxonomy = DefaultTaxonomy
	}
	switch key := strings.ToLower(strings.TrimSpace(q.OrderBy)); key {
	case OrderBySlug, OrderByTermGroup, OrderByDescription, OrderByCount, OrderByNone:
		out.OrderBy = key
	case OrderByTermID, "id":
		out.OrderBy = OrderByTermID
	}
	if strings.EqualFold(strings.TrimSpace(q.Order), "DESC") {
		out.Order = "DESC"
	}
	return out
}
