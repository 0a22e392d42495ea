package wpschema

import (
	"context"
	"fmt"
	"strconv"

	schema "github.com/hanpama/wpgraph/internal/schema"
	"github.com/hanpama/wpgraph/internal/wp"
	"go.uber.org/zap"
)

// Names of the types every schema carries besides its variants.
const (
	PostInterface = "WP_Post"
	TermType      = "WP_Term"
	StatusEnum    = "PostStatus"
	QueryType     = "Query"
)

// ExcerptLength is the number of words kept when an excerpt is derived from
// the post content.
const ExcerptLength = 55

// ExcerptMore is appended to derived excerpts that were cut short.
const ExcerptMore = "&hellip;"

// Env is what field resolvers read derived values from.
type Env struct {
	Host    wp.Host
	Filters *wp.Filters
	Logger  *zap.Logger
}

func (e Env) logger() *zap.Logger {
	if e.Logger == nil {
		return zap.NewNop()
	}
	return e.Logger
}

var (
	stringType    = schema.NamedType("String")
	intType       = schema.NamedType("Int")
	booleanType   = schema.NamedType("Boolean")
	postType      = schema.NamedType(PostInterface)
	postListType  = schema.ListType(schema.NamedType(PostInterface))
	termListType  = schema.ListType(schema.NamedType(TermType))
	dateFormatArg = ArgumentDescriptor{Name: "format", Type: stringType, Description: "A PHP date() format; the stored value is returned when omitted"}
)

// PostFields returns the fields shared by WP_Post and all of its variants.
func PostFields(env Env) []FieldDescriptor {
	return []FieldDescriptor{
		{
			Name:        "id",
			Type:        schema.NonNullType(schema.NamedType("ID")),
			Description: "The ID of an object",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return GlobalID(PostInterface, p.ID), nil
			}),
		},
		{
			Name:        "ID",
			Type:        schema.NonNullType(stringType),
			Description: "The ID of the post",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return strconv.FormatInt(p.ID, 10), nil
			}),
		},
		{
			Name:        "name",
			Type:        stringType,
			Description: "The post's slug",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return p.PostName, nil
			}),
		},
		{
			Name:        "title",
			Type:        stringType,
			Description: "The title of the post",
			Resolve: postResolver(func(ctx context.Context, p *wp.Post, _ Args) (any, error) {
				return env.Filters.Apply(ctx, wp.FilterTitle, p.Title(), p), nil
			}),
		},
		{
			Name:        "content",
			Type:        stringType,
			Description: "The full content of the post",
			Resolve: postResolver(func(ctx context.Context, p *wp.Post, _ Args) (any, error) {
				return env.Filters.Apply(ctx, wp.FilterContent, p.PostContent, p), nil
			}),
		},
		{
			Name:        "excerpt",
			Type:        stringType,
			Description: "User-defined post excerpt",
			Args: []ArgumentDescriptor{
				{Name: "always", Type: booleanType, Description: "If true will create an excerpt from post content"},
			},
			Resolve: postResolver(func(ctx context.Context, p *wp.Post, args Args) (any, error) {
				return excerpt(ctx, env.Filters, p, args.Bool("always")), nil
			}),
		},
		dateField("date", func(p *wp.Post) string { return p.PostDate }),
		dateField("date_gmt", func(p *wp.Post) string { return p.PostDateGMT }),
		{
			Name:        "status",
			Type:        schema.NamedType(StatusEnum),
			Description: "Status of the post",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				if name, ok := statusName(p.PostStatus); ok {
					return name, nil
				}
				return nil, nil
			}),
		},
		{
			Name:        "parent",
			Type:        postType,
			Description: "Parent of this post",
			Resolve: postResolver(func(ctx context.Context, p *wp.Post, _ Args) (any, error) {
				if p.PostParent == 0 {
					return nil, nil
				}
				parent, err := env.Host.GetPost(ctx, p.PostParent)
				if err != nil {
					env.logger().Debug("parent lookup failed", zap.Int64("post_id", p.ID), zap.Int64("parent_id", p.PostParent), zap.Error(err))
					return nil, nil
				}
				if parent == nil {
					return nil, nil
				}
				return parent, nil
			}),
		},
		dateField("modified", func(p *wp.Post) string { return p.PostModified }),
		dateField("modified_gmt", func(p *wp.Post) string { return p.PostModifiedGMT }),
		{
			Name:        "comment_count",
			Type:        intType,
			Description: "Number of comments on post",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return p.CommentCount, nil
			}),
		},
		{
			Name: "menu_order",
			Type: intType,
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return p.MenuOrder, nil
			}),
		},
		{
			Name:        "permalink",
			Type:        stringType,
			Description: "Retrieve full permalink for current post",
			Resolve: postResolver(func(ctx context.Context, p *wp.Post, _ Args) (any, error) {
				link, err := env.Host.Permalink(ctx, p)
				if err != nil {
					env.logger().Debug("permalink failed", zap.Int64("post_id", p.ID), zap.Error(err))
					return "", nil
				}
				return link, nil
			}),
		},
		{
			Name:        "terms",
			Type:        termListType,
			Description: "Terms (categories, tags etc) of this post",
			Args: []ArgumentDescriptor{
				{Name: "taxonomy", Type: stringType, Description: "The taxonomy for which to retrieve terms. Defaults to post_tag.", Default: wp.DefaultTaxonomy},
				{Name: "orderby", Type: stringType, Description: "Defaults to name", Default: wp.OrderByName},
				{Name: "order", Type: stringType, Description: "Defaults to ASC", Default: "ASC"},
			},
			Resolve: postResolver(func(ctx context.Context, p *wp.Post, args Args) (any, error) {
				q := wp.TermQuery{
					Taxonomy: args.String("taxonomy"),
					OrderBy:  args.String("orderby"),
					Order:    args.String("order"),
				}.Normalize()
				terms, err := env.Host.GetPostTerms(ctx, p.ID, q)
				if err != nil {
					env.logger().Debug("term lookup failed", zap.Int64("post_id", p.ID), zap.String("taxonomy", q.Taxonomy), zap.Error(err))
					return []*wp.Term{}, nil
				}
				if terms == nil {
					return []*wp.Term{}, nil
				}
				return terms, nil
			}),
		},
	}
}

// excerpt returns the filtered stored excerpt. When that is empty and always
// is set, the excerpt is derived from the content with shortcodes removed.
func excerpt(ctx context.Context, filters *wp.Filters, p *wp.Post, always bool) string {
	out := filters.Apply(ctx, wp.FilterExcerpt, p.PostExcerpt, p)
	if out != "" || !always {
		return out
	}
	derived := wp.TrimWords(wp.StripShortcodes(p.PostContent), ExcerptLength, ExcerptMore)
	return filters.Apply(ctx, wp.FilterExcerpt, derived, p)
}

func dateField(name string, stored func(*wp.Post) string) FieldDescriptor {
	return FieldDescriptor{
		Name:        name,
		Type:        stringType,
		Description: "Format: 0000-00-00 00:00:00",
		Args:        []ArgumentDescriptor{dateFormatArg},
		Resolve: postResolver(func(_ context.Context, p *wp.Post, args Args) (any, error) {
			return formatStoredDate(stored(p), args.String("format")), nil
		}),
	}
}

// formatStoredDate renders raw with a PHP date() pattern. raw is returned
// unchanged when format is empty or raw does not hold a date.
func formatStoredDate(raw, format string) string {
	if format == "" {
		return raw
	}
	t, ok := wp.ParseDate(raw)
	if !ok {
		return raw
	}
	return wp.FormatDate(format, t)
}

// postResolver adapts a function over *wp.Post to a Resolver.
func postResolver(fn func(ctx context.Context, p *wp.Post, args Args) (any, error)) Resolver {
	return func(ctx context.Context, source any, args Args) (any, error) {
		p, ok := source.(*wp.Post)
		if !ok || p == nil {
			return nil, fmt.Errorf("expected *wp.Post source, got %T", source)
		}
		return fn(ctx, p, args)
	}
}
