package app

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/maurofranchi/gamegear/internal/adapters/httpserver"
	"github.com/maurofranchi/gamegear/internal/adapters/repo/postgres"
	"github.com/maurofranchi/gamegear/internal/domain"
	"github.com/maurofranchi/gamegear/internal/usecase"
)

type App struct {
	DB        *gorm.DB
	CatalogUC *usecase.CatalogUC
}

// NewApp migrates and seeds the catalog table, then resolves the immutable
// in-memory catalog the session engine runs on. The database is not touched
// again after this returns.
func NewApp(ctx context.Context, db *gorm.DB) (*App, error) {
	repo := postgres.NewCatalogRepo(db)
	if err := repo.Migrate(); err != nil {
		return nil, err
	}
	if err := repo.SeedIfEmpty(ctx, seedProducts()); err != nil {
		return nil, err
	}
	catalogUC, err := usecase.NewCatalogUC(ctx, repo)
	if err != nil {
		return nil, err
	}
	return &App{DB: db, CatalogUC: catalogUC}, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.CatalogUC)
}

// seedProducts is the GameGear launch catalog. Ids double as declaration
// order, which the storefront's featured sort relies on.
func seedProducts() []domain.Product {
	return []domain.Product{
		{
			ID: 1, Name: "Elite Gaming Mouse", Price: 79.99, DiscountPercent: 10,
			Category: domain.CategoryAccessories, Rating: 4.5, Reviews: 128,
			Description: "High-precision gaming mouse with adjustable DPI and RGB lighting",
			Specs:       []string{"16000 DPI", "8 Programmable Buttons", "RGB Lighting"},
			Stock:       15, IsNew: true,
			Image: "https://techspace.ma/cdn/shop/files/souri1_eed8f77d-26af-4799-8568-bd2af9369b53_800x.png?v=1728734477",
		},
		{
			ID: 2, Name: "Mechanical Keyboard RGB", Price: 159.99, DiscountPercent: 0,
			Category: domain.CategoryAccessories, Rating: 5, Reviews: 256,
			Description: "Premium mechanical keyboard with Cherry MX switches",
			Specs:       []string{"Cherry MX Blue", "Full RGB", "Aluminum Frame"},
			Stock:       8, IsNew: true,
			Image: "https://m.media-amazon.com/images/I/71fRP7KY9hL._AC_UF1000,1000_QL80_.jpg",
		},
		{
			ID: 3, Name: "Gaming Headset Pro", Price: 129.99, DiscountPercent: 15,
			Category: domain.CategoryAudio, Rating: 4, Reviews: 89,
			Description: "Immersive 7.1 surround sound gaming headset",
			Specs:       []string{"7.1 Surround", "Noise Cancelling", "Memory Foam"},
			Stock:       20, IsNew: false,
			Image: "https://images-cdn.ubuy.co.in/65f9a0296dfa5b5ace4e5222-razer-blackshark-v2-se-wired-gaming.jpg",
		},
		{
			ID: 4, Name: "Gaming Chair", Price: 299.99, DiscountPercent: 0,
			Category: domain.CategoryFurniture, Rating: 4.5, Reviews: 167,
			Description: "Ergonomic gaming chair with lumbar support",
			Specs:       []string{"4D Armrests", "180° Recline", "Lumbar Support"},
			Stock:       5, IsNew: false,
			Image: "https://m.media-amazon.com/images/I/71DlNwhYT1L.jpg",
		},
		{
			ID: 5, Name: "4K Gaming Monitor", Price: 499.99, DiscountPercent: 5,
			Category: domain.CategoryDisplays, Rating: 5, Reviews: 203,
			Description: "Ultra-smooth 144Hz 4K gaming monitor",
			Specs:       []string{"4K Resolution", "144Hz", "1ms Response"},
			Stock:       12, IsNew: true,
			Image: "https://static1.xdaimages.com/wordpress/wp-content/uploads/2024/01/asus-rog-swift-pg32ucdm.jpg",
		},
		{
			ID: 6, Name: "Gaming Mouse Pad XL", Price: 29.99, DiscountPercent: 0,
			Category: domain.CategoryAccessories, Rating: 4, Reviews: 78,
			Description: "Extended gaming mouse pad with stitched edges",
			Specs:       []string{"900x400mm", "Anti-slip Base", "Waterproof"},
			Stock:       30, IsNew: false,
			Image: "https://airgaming.com.au/cdn/shop/products/W2-scaled_750x750.jpg?v=1649992972",
		},
	}
}
