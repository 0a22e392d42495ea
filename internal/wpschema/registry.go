// Package wpschema declares the GraphQL types that expose WordPress posts and
// maps each post onto one of them by its post_type.
package wpschema

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/hanpama/wpgraph/internal/eventbus"
	"github.com/hanpama/wpgraph/internal/events"
	"github.com/hanpama/wpgraph/internal/wp"
	"go.uber.org/zap"
)

var (
	// ErrDuplicateVariant is returned when two variants share a type name.
	ErrDuplicateVariant = errors.New("wpschema: duplicate variant")
	// ErrFrozen is returned when variants are registered after Build.
	ErrFrozen = errors.New("wpschema: registry is frozen")
)

var reservedNames = []string{
	PostInterface, TermType, StatusEnum, QueryType,
	"String", "Int", "Float", "Boolean", "ID",
}

// Registry maps type names onto the variants registered for them.
type Registry struct {
	env Env
	log *zap.Logger

	mu       sync.RWMutex
	variants map[string]*Variant
	frozen   bool
}

type Option func(*Registry)

// WithLogger sets the logger type resolutions are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

// NewRegistry returns an empty registry whose fields read from env. A nil
// env.Filters applies no filters.
func NewRegistry(env Env, opts ...Option) *Registry {
	r := &Registry{env: env, log: zap.NewNop(), variants: make(map[string]*Variant)}
	for _, opt := range opts {
		opt(r)
	}
	if r.env.Logger == nil {
		r.env.Logger = r.log
	}
	return r
}

// Env returns the environment the registry's fields resolve against.
func (r *Registry) Env() Env { return r.env }

// Register adds v under v.Name.
func (r *Registry) Register(v *Variant) error {
	if v == nil {
		return errors.New("wpschema: nil variant")
	}
	if !validTypeName(v.Name) {
		return fmt.Errorf("wpschema: invalid type name %q for post type %q", v.Name, v.PostType)
	}
	if slices.Contains(reservedNames, v.Name) {
		return fmt.Errorf("wpschema: type name %q is reserved", v.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	if prev, ok := r.variants[v.Name]; ok {
		return fmt.Errorf("%w: %s (post types %q and %q)", ErrDuplicateVariant, v.Name, prev.PostType, v.PostType)
	}
	r.variants[v.Name] = v
	return nil
}

// RegisterDefaults registers the Post, Page and Attachment variants.
func (r *Registry) RegisterDefaults() error {
	for _, v := range []*Variant{PostVariant(r.env), PageVariant(r.env), AttachmentVariant(r.env)} {
		if err := r.Register(v); err != nil {
			return err
		}
	}
	return nil
}

// RegisterPostType registers a variant for a custom post type.
func (r *Registry) RegisterPostType(postType, description string) error {
	postType = strings.TrimSpace(postType)
	if postType == "" {
		return errors.New("wpschema: empty post type")
	}
	return r.Register(CustomVariant(r.env, postType, description))
}

// Lookup returns the variant registered under name.
func (r *Registry) Lookup(name string) (*Variant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.variants[name]
	return v, ok
}

// Variants returns the registered variants sorted by name.
func (r *Registry) Variants() []*Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Variant, 0, len(r.variants))
	for _, v := range r.variants {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b *Variant) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// ResolveType returns the variant registered for the post's post_type. It
// reports false when there is none; that is not an error.
func (r *Registry) ResolveType(ctx context.Context, p *wp.Post) (*Variant, bool) {
	var discriminator string
	if p != nil {
		discriminator = p.PostType
	}
	name := UpperCamelize(discriminator)
	var v *Variant
	found := false
	if name != "" {
		v, found = r.Lookup(name)
	}

	r.log.Debug("resolving post type",
		zap.String("post_type", discriminator),
		zap.String("type", name),
		zap.Bool("found", found),
	)
	e := events.TypeResolved{AbstractType: PostInterface, Discriminator: discriminator, Found: found}
	if found {
		e.TypeName = v.Name
	}
	eventbus.Publish(ctx, e)

	if !found {
		return nil, false
	}
	return v, true
}
