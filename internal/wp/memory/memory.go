// Package memory implements wp.Host over content loaded from a YAML fixture.
// The host is immutable once built and safe for concurrent readers.
package memory

import (
	"context"
	"fmt"
	"io"
	"os"

	wp "github.com/hanpama/wpgraph/internal/wp"
	"gopkg.in/yaml.v3"
)

// Fixtures is the document layout of a fixture file.
type Fixtures struct {
	Taxonomies    []string       `yaml:"taxonomies"`
	Posts         []wp.Post      `yaml:"posts"`
	Terms         []wp.Term      `yaml:"terms"`
	Relationships []Relationship `yaml:"relationships"`
}

// Relationship attaches a term, by term_taxonomy_id, to a post.
type Relationship struct {
	ObjectID       int64 `yaml:"object_id"`
	TermTaxonomyID int64 `yaml:"term_taxonomy_id"`
}

// builtinTaxonomies are known even when no fixture term uses them.
var builtinTaxonomies = []string{"category", "post_tag", "post_format"}

type Host struct {
	links      wp.Permalinks
	posts      map[int64]*wp.Post
	children   map[int64][]*wp.Post
	terms      map[int64]*wp.Term // by term_taxonomy_id
	postTerms  map[int64][]int64
	taxonomies map[string]bool
}

var _ wp.Host = (*Host)(nil)

// New builds a host from fixtures. Duplicate IDs and relationships to unknown
// terms are rejected.
func New(f Fixtures, links wp.Permalinks) (*Host, error) {
	h := &Host{
		links:      links,
		posts:      make(map[int64]*wp.Post, len(f.Posts)),
		children:   make(map[int64][]*wp.Post),
		terms:      make(map[int64]*wp.Term, len(f.Terms)),
		postTerms:  make(map[int64][]int64),
		taxonomies: make(map[string]bool),
	}
	for _, name := range builtinTaxonomies {
		h.taxonomies[name] = true
	}
	for _, name := range f.Taxonomies {
		h.taxonomies[name] = true
	}

	for i := range f.Posts {
		p := f.Posts[i]
		if p.ID <= 0 {
			return nil, fmt.Errorf("memory: post %d: ID must be positive", i)
		}
		if _, dup := h.posts[p.ID]; dup {
			return nil, fmt.Errorf("memory: duplicate post ID %d", p.ID)
		}
		h.posts[p.ID] = &p
	}
	for _, p := range h.posts {
		if p.PostParent != 0 {
			h.children[p.PostParent] = append(h.children[p.PostParent], p)
		}
	}
	for _, list := range h.children {
		wp.SortChildren(list)
	}

	for i := range f.Terms {
		t := f.Terms[i]
		if t.Taxonomy == "" {
			return nil, fmt.Errorf("memory: term %d has no taxonomy", t.TermID)
		}
		if t.TermTaxonomyID == 0 {
			t.TermTaxonomyID = t.TermID
		}
		if _, dup := h.terms[t.TermTaxonomyID]; dup {
			return nil, fmt.Errorf("memory: duplicate term_taxonomy_id %d", t.TermTaxonomyID)
		}
		h.terms[t.TermTaxonomyID] = &t
		h.taxonomies[t.Taxonomy] = true
	}

	for _, r := range f.Relationships {
		if _, ok := h.terms[r.TermTaxonomyID]; !ok {
			return nil, fmt.Errorf("memory: relationship of post %d references unknown term_taxonomy_id %d", r.ObjectID, r.TermTaxonomyID)
		}
		h.postTerms[r.ObjectID] = append(h.postTerms[r.ObjectID], r.TermTaxonomyID)
	}
	return h, nil
}

// Load decodes fixtures from r and builds a host.
func Load(r io.Reader, links wp.Permalinks) (*Host, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("memory: decoding fixtures: %w", err)
	}
	return New(f, links)
}

// LoadFile reads fixtures from the named file.
func LoadFile(path string, links wp.Permalinks) (*Host, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("memory: %w", err)
	}
	defer file.Close()
	return Load(file, links)
}

func (h *Host) GetPost(ctx context.Context, id int64) (*wp.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return h.posts[id], nil
}

func (h *Host) GetChildren(ctx context.Context, parentID int64, postType string) ([]*wp.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]*wp.Post, 0, len(h.children[parentID]))
	for _, p := range h.children[parentID] {
		if postType == "" || p.PostType == postType {
			out = append(out, p)
		}
	}
	return out, nil
}

func (h *Host) GetPostTerms(ctx context.Context, postID int64, q wp.TermQuery) ([]*wp.Term, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q = q.Normalize()
	if !h.taxonomies[q.Taxonomy] {
		return nil, fmt.Errorf("%w: %q", wp.ErrInvalidTaxonomy, q.Taxonomy)
	}
	out := []*wp.Term{}
	for _, ttid := range h.postTerms[postID] {
		t := h.terms[ttid]
		if t.Taxonomy == q.Taxonomy {
			cp := *t
			out = append(out, &cp)
		}
	}
	wp.SortTerms(out, q)
	return out, nil
}

func (h *Host) Permalink(ctx context.Context, p *wp.Post) (string, error) {
	return h.links.Link(ctx, p, h.GetPost)
}
