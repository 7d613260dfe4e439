// Package wantlist provides read access to the imported wantlist rows.
package wantlist

import (
	"gorm.io/gorm"

	"github.com/sdeneef/discodash/internal/entities"
)

// Repository handles wantlist item queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new wantlist repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// All returns every wantlist item. An empty wantlist is an empty slice,
// not an error.
func (r *Repository) All() ([]entities.WantlistItem, error) {
	var items []entities.WantlistItem
	err := r.db.Preload("Discs").Find(&items).Error
	return items, err
}

// Count returns the number of wantlist rows.
func (r *Repository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entities.WantlistItem{}).Count(&count).Error
	return count, err
}
