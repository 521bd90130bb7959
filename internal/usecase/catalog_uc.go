package usecase

import (
	"context"

	"github.com/maurofranchi/gamegear/internal/domain"
)

// CatalogUC resolves the immutable catalog once at startup and serves
// reads for the rest of the session.
type CatalogUC struct {
	catalog *domain.Catalog
}

func NewCatalogUC(ctx context.Context, repo domain.CatalogRepo) (*CatalogUC, error) {
	products, err := repo.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := domain.NewCatalog(products)
	if err != nil {
		return nil, err
	}
	return &CatalogUC{catalog: catalog}, nil
}

func NewCatalogUCFromProducts(products []domain.Product) (*CatalogUC, error) {
	catalog, err := domain.NewCatalog(products)
	if err != nil {
		return nil, err
	}
	return &CatalogUC{catalog: catalog}, nil
}

func (uc *CatalogUC) Catalog() *domain.Catalog { return uc.catalog }

func (uc *CatalogUC) Get(id int) (domain.Product, error) {
	return uc.catalog.Get(id)
}

func (uc *CatalogUC) All() []domain.Product {
	return uc.catalog.All()
}

// Categories lists the filter choices with "All" first, matching the
// closed category set of the catalog.
func (uc *CatalogUC) Categories() []string {
	out := []string{domain.CategoryAll}
	for _, c := range domain.Categories() {
		out = append(out, string(c))
	}
	return out
}
