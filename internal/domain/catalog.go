package domain

import (
	"context"
	"fmt"
)

// CatalogRepo resolves the product snapshot the session operates on.
// The origin (seeded table, fetched feed) is outside the core.
type CatalogRepo interface {
	LoadAll(ctx context.Context) ([]Product, error)
}

// Catalog is the immutable product store for one session. Products keep
// their declaration order; lookups go through the id index.
type Catalog struct {
	products []Product
	byID     map[int]int
}

func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[int]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("catalog: duplicate product id %d", p.ID)
		}
		c.byID[p.ID] = i
	}
	return c, nil
}

func (c *Catalog) Get(id int) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// All returns the catalog in declaration order. The slice is a copy.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int { return len(c.products) }
