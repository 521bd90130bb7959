package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/maurofranchi/gamegear/internal/domain"
)

type CatalogRepo struct{ db *gorm.DB }

func NewCatalogRepo(db *gorm.DB) *CatalogRepo { return &CatalogRepo{db: db} }

// LoadAll returns the complete catalog snapshot in declaration order.
// The engine calls this once at startup; the table is read-only afterwards.
func (r *CatalogRepo) LoadAll(ctx context.Context) ([]domain.Product, error) {
	var list []domain.Product
	if err := r.db.WithContext(ctx).Order("id asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

// SeedIfEmpty populates the catalog on first run. Existing rows are left
// untouched so manual catalog edits survive restarts.
func (r *CatalogRepo) SeedIfEmpty(ctx context.Context, products []domain.Product) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&products).Error
}
