package wp

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// PostLookup fetches a post by ID; it returns (nil, nil) when none exists.
type PostLookup func(ctx context.Context, id int64) (*Post, error)

// Permalinks renders public URLs for posts.
//
// Structure uses the rewrite tags %year%, %monthnum%, %day%, %hour%,
// %minute%, %second%, %post_id% and %postname%. An empty Structure selects
// plain links of the form <home>/?p=<ID>.
type Permalinks struct {
	Home      string
	Structure string
}

// maxPageDepth bounds the ancestor walk for hierarchical page links.
const maxPageDepth = 32

// Link returns the permalink of p. Pages are linked through the slugs of their
// ancestors, fetched with lookup. Posts without a slug, attachments and other
// post types get plain links.
func (pl Permalinks) Link(ctx context.Context, p *Post, lookup PostLookup) (string, error) {
	home := strings.TrimRight(pl.Home, "/")
	plain := home + "/?p=" + strconv.FormatInt(p.ID, 10)
	if pl.Structure == "" || p.PostName == "" {
		return plain, nil
	}
	trailing := ""
	if strings.HasSuffix(pl.Structure, "/") {
		trailing = "/"
	}

	switch p.PostType {
	case "post":
		return home + "/" + strings.TrimLeft(pl.expand(p), "/"), nil
	case "page":
		path, err := pagePath(ctx, p, lookup)
		if err != nil {
			return "", err
		}
		return home + "/" + path + trailing, nil
	default:
		return plain, nil
	}
}

func (pl Permalinks) expand(p *Post) string {
	t, ok := ParseDate(p.PostDate)
	r := []string{
		"%post_id%", strconv.FormatInt(p.ID, 10),
		"%postname%", p.PostName,
	}
	if ok {
		r = append(r,
			"%year%", strconv.Itoa(t.Year()),
			"%monthnum%", t.Format("01"),
			"%day%", t.Format("02"),
			"%hour%", t.Format("15"),
			"%minute%", t.Format("04"),
			"%second%", t.Format("05"),
		)
	}
	return strings.NewReplacer(r...).Replace(pl.Structure)
}

func pagePath(ctx context.Context, p *Post, lookup PostLookup) (string, error) {
	segments := []string{p.PostName}
	seen := map[int64]bool{p.ID: true}
	parent := p.PostParent
	for depth := 0; parent != 0 && lookup != nil; depth++ {
		if depth == maxPageDepth || seen[parent] {
			return "", fmt.Errorf("wp: page %d has a cyclic or too deep ancestry", p.ID)
		}
		seen[parent] = true
		anc, err := lookup(ctx, parent)
		if err != nil {
			return "", fmt.Errorf("wp: fetching ancestor %d of page %d: %w", parent, p.ID, err)
		}
		if anc == nil {
			break
		}
		segments = append(segments, anc.PostName)
		parent = anc.PostParent
	}
	slices.Reverse(segments)
	return strings.Join(segments, "/"), nil
}
