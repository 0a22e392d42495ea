package wp

import (
	"cmp"
	"slices"
	"strings"
)

// SortTerms orders terms in place according to q. Ties, and the "none"
// ordering, fall back to ascending term_id so equal queries always yield the
// same sequence.
func SortTerms(terms []*Term, q TermQuery) {
	q = q.Normalize()
	desc := q.Order == "DESC"
	slices.SortStableFunc(terms, func(a, b *Term) int {
		var c int
		switch q.OrderBy {
		case OrderByName:
			c = compareFold(a.Name, b.Name)
		case OrderBySlug:
			c = strings.Compare(a.Slug, b.Slug)
		case OrderByTermGroup:
			c = cmp.Compare(a.TermGroup, b.TermGroup)
		case OrderByDescription:
			c = compareFold(a.Description, b.Description)
		case OrderByCount:
			c = cmp.Compare(a.Count, b.Count)
		case OrderByTermID:
			c = cmp.Compare(a.TermID, b.TermID)
		}
		if desc {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.TermID, b.TermID)
	})
}

// SortChildren orders posts by menu_order, then title, then ID.
func SortChildren(posts []*Post) {
	slices.SortStableFunc(posts, func(a, b *Post) int {
		if c := cmp.Compare(a.MenuOrder, b.MenuOrder); c != 0 {
			return c
		}
		if c := strings.Compare(a.PostTitle, b.PostTitle); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareFold(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
