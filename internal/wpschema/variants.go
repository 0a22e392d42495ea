package wpschema

import (
	"context"

	"github.com/hanpama/wpgraph/internal/wp"
	"go.uber.org/zap"
)

// PostVariant is the type of post_type "post".
func PostVariant(env Env) *Variant {
	return &Variant{
		Name:        "Post",
		PostType:    "post",
		Description: "A WordPress post",
		Fields:      PostFields(env),
	}
}

// PageVariant is the type of post_type "page". Pages also list their children.
func PageVariant(env Env) *Variant {
	fields := append(PostFields(env), FieldDescriptor{
		Name:        "children",
		Type:        postListType,
		Description: "The posts whose parent is this page",
		Args: []ArgumentDescriptor{
			{Name: "post_type", Type: stringType, Description: "Only list children of this post type"},
		},
		Resolve: postResolver(func(ctx context.Context, p *wp.Post, args Args) (any, error) {
			return children(ctx, env, p.ID, args.String("post_type")), nil
		}),
	})
	return &Variant{
		Name:        "Page",
		PostType:    "page",
		Description: "A WordPress page",
		Fields:      fields,
	}
}

// AttachmentVariant is the type of post_type "attachment".
func AttachmentVariant(env Env) *Variant {
	fields := append(PostFields(env),
		FieldDescriptor{
			Name:        "mime_type",
			Type:        stringType,
			Description: "The MIME type of the attached file",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return p.PostMimeType, nil
			}),
		},
		FieldDescriptor{
			Name:        "url",
			Type:        stringType,
			Description: "The URL of the attached file",
			Resolve: postResolver(func(_ context.Context, p *wp.Post, _ Args) (any, error) {
				return p.GUID, nil
			}),
		},
	)
	return &Variant{
		Name:        "Attachment",
		PostType:    "attachment",
		Description: "A file attached to a post",
		Fields:      fields,
	}
}

// CustomVariant is the type of a custom post type. It carries the shared post
// fields only.
func CustomVariant(env Env, postType, description string) *Variant {
	if description == "" {
		description = "Custom post type " + postType
	}
	return &Variant{
		Name:        UpperCamelize(postType),
		PostType:    postType,
		Description: description,
		Fields:      PostFields(env),
	}
}

// children lists the posts below parentID. Host errors yield an empty list.
func children(ctx context.Context, env Env, parentID int64, postType string) []*wp.Post {
	posts, err := env.Host.GetChildren(ctx, parentID, postType)
	if err != nil {
		env.logger().Debug("children lookup failed", zap.Int64("parent_id", parentID), zap.String("post_type", postType), zap.Error(err))
		return []*wp.Post{}
	}
	if posts == nil {
		return []*wp.Post{}
	}
	return posts
}
