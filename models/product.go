package models

import "time"

// Product categories sold by the farm.
const (
	CategoryLayers   = "layers"
	CategoryBroilers = "broilers"
	CategoryChicks   = "chicks"
	CategoryEggs     = "eggs"
	CategoryMeat     = "meat"
)

var ProductCategories = []string{
	CategoryLayers, CategoryBroilers, CategoryChicks, CategoryEggs, CategoryMeat,
}

type Product struct {
	ID          string     `json:"id" bson:"_id"`
	Name        string     `json:"name" bson:"name"`
	Category    string     `json:"category" bson:"category"`
	Price       int64      `json:"price" bson:"price"` // TZS, no subunit
	Unit        string     `json:"unit" bson:"unit"`   // e.g. "per bird", "per tray"
	Description string     `json:"description" bson:"description"`
	Image       string     `json:"image" bson:"image"`
	IsActive    bool       `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" bson:"updated_at"`
	DeletedAt   *time.Time `json:"-" bson:"deleted_at,omitempty"`
}

func ValidCategory(category string) bool {
	for _, c := range ProductCategories {
		if c == category {
			return true
		}
	}
	return false
}
