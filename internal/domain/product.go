package domain

import (
	"fmt"
	"time"
)

type Category string

const (
	CategoryAccessories Category = "Accessories"
	CategoryAudio       Category = "Audio"
	CategoryDisplays    Category = "Displays"
	CategoryFurniture   Category = "Furniture"
)

// CategoryAll is a filter value only, never a product category.
const CategoryAll = "All"

func Categories() []Category {
	return []Category{CategoryAccessories, CategoryAudio, CategoryDisplays, CategoryFurniture}
}

func ValidCategory(c Category) bool {
	for _, v := range Categories() {
		if v == c {
			return true
		}
	}
	return false
}

type Product struct {
	ID              int      `gorm:"primaryKey"`
	Name            string   `gorm:"size:180;not null"`
	Description     string   `gorm:"type:text"`
	Price           float64  `gorm:"type:decimal(12,2);not null"`
	DiscountPercent int      `gorm:"not null;default:0"`
	Category        Category `gorm:"type:varchar(40);index"`
	Rating          float64  `gorm:"type:decimal(3,1);default:0"`
	Reviews         int      `gorm:"default:0"`
	Specs           []string `gorm:"type:jsonb;serializer:json"`
	Stock           int      `gorm:"not null;default:0"`
	IsNew           bool     `gorm:"default:false"`
	Image           string   `gorm:"size:255"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p Product) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("product %q: id must be positive", p.Name)
	}
	if p.Price <= 0 {
		return fmt.Errorf("product %d: price must be positive", p.ID)
	}
	if p.DiscountPercent < 0 || p.DiscountPercent > 100 {
		return fmt.Errorf("product %d: discount out of range", p.ID)
	}
	if p.Rating < 0 || p.Rating > 5 {
		return fmt.Errorf("product %d: rating out of range", p.ID)
	}
	if p.Reviews < 0 {
		return fmt.Errorf("product %d: negative review count", p.ID)
	}
	if p.Stock < 0 {
		return fmt.Errorf("product %d: negative stock", p.ID)
	}
	if !ValidCategory(p.Category) {
		return fmt.Errorf("product %d: unknown category %q", p.ID, p.Category)
	}
	return nil
}

type Availability string

const (
	AvailabilityUnavailable Availability = "unavailable"
	AvailabilityLowStock    Availability = "low_stock"
	AvailabilityNormal      Availability = "normal"
)

const lowStockThreshold = 5

// Availability classifies stock for presentation. It never mutates state;
// only AddItem acts on the unavailable case.
func (p Product) Availability() Availability {
	switch {
	case p.Stock == 0:
		return AvailabilityUnavailable
	case p.Stock <= lowStockThreshold:
		return AvailabilityLowStock
	default:
		return AvailabilityNormal
	}
}
