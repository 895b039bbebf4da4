package catalog

import (
	"strings"

	"github.com/lunargift/giftmall/internal/domain"
)

// Catalog is a fixed set of gifts with pure, order-preserving queries.
// All methods are side-effect free and safe for concurrent use.
type Catalog struct {
	gifts []domain.Gift
}

// New builds a catalog over the given gift list.
func New(gifts []domain.Gift) *Catalog {
	return &Catalog{gifts: gifts}
}

// Default returns the built-in promotional catalog.
func Default() *Catalog {
	return New(defaultGifts)
}

// All returns every gift in catalog order.
func (c *Catalog) All() []domain.Gift {
	out := make([]domain.Gift, len(c.gifts))
	copy(out, c.gifts)
	return out
}

// ByID looks up a single gift by its stable id.
func (c *Catalog) ByID(id string) (domain.Gift, bool) {
	for _, g := range c.gifts {
		if g.ID == id {
			return g, true
		}
	}
	return domain.Gift{}, false
}

// ByCategory filters by category. The pseudo-category "all" is an identity
// passthrough returning the full catalog.
func (c *Catalog) ByCategory(category string) []domain.Gift {
	if category == domain.CategoryAll {
		return c.All()
	}
	var out []domain.Gift
	for _, g := range c.gifts {
		if string(g.Category) == category {
			out = append(out, g)
		}
	}
	return out
}

// Popular returns gifts flagged popular, preserving catalog order.
func (c *Catalog) Popular() []domain.Gift {
	var out []domain.Gift
	for _, g := range c.gifts {
		if g.IsPopular {
			out = append(out, g)
		}
	}
	return out
}

// NewArrivals returns gifts flagged as new, preserving catalog order.
func (c *Catalog) NewArrivals() []domain.Gift {
	var out []domain.Gift
	for _, g := range c.gifts {
		if g.IsNew {
			out = append(out, g)
		}
	}
	return out
}

// Search matches the query case-insensitively against name, description and
// tags. An empty query matches every gift; special-casing blank input is the
// caller's concern.
func (c *Catalog) Search(query string) []domain.Gift {
	q := strings.ToLower(query)
	var out []domain.Gift
	for _, g := range c.gifts {
		if matchGift(g, q) {
			out = append(out, g)
		}
	}
	return out
}

func matchGift(g domain.Gift, q string) bool {
	if strings.Contains(strings.ToLower(g.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(g.Description), q) {
		return true
	}
	for _, tag := range g.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}
