// Package collection provides read access to the imported collection rows.
package collection

import (
	"errors"
	"math/rand"
	"sort"

	"gorm.io/gorm"

	"github.com/sdeneef/discodash/internal/entities"
)

// ErrNoItems indicates the collection table holds no matching rows. This
// is an ordinary absence-of-data condition, not a connectivity fault.
var ErrNoItems = errors.New("no collection items available")

// Repository handles collection item queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new collection repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Random returns one uniformly random collection item, optionally limited
// to a physical format. Selection is count-then-offset against the live
// table, so it stays uniform over whatever the current data set is.
func (r *Repository) Random(format entities.FormatType) (*entities.CollectionItem, error) {
	query := r.db.Model(&entities.CollectionItem{})
	if format != entities.FormatUnknown {
		query = query.Where("format_type = ?", format)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrNoItems
	}

	var item entities.CollectionItem
	err := query.Preload("Discs").Offset(rand.Intn(int(count))).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Recent returns the n most recently added items.
func (r *Repository) Recent(n int) ([]entities.CollectionItem, error) {
	var items []entities.CollectionItem
	err := r.db.Preload("Discs").Order("date_added DESC").Limit(n).Find(&items).Error
	return items, err
}

// All returns every collection item.
func (r *Repository) All() ([]entities.CollectionItem, error) {
	var items []entities.CollectionItem
	err := r.db.Preload("Discs").Find(&items).Error
	return items, err
}

// AllForArtist returns every item credited to the given artist. Artists
// are stored as a serialized list, so matching happens in memory; sqlite
// cannot unnest into the JSON column.
func (r *Repository) AllForArtist(artist string) ([]entities.CollectionItem, error) {
	return r.filtered(func(item entities.CollectionItem) bool {
		return contains(item.Artists, artist)
	})
}

// AllForGenre returns every item tagged with the given genre.
func (r *Repository) AllForGenre(genre string) ([]entities.CollectionItem, error) {
	return r.filtered(func(item entities.CollectionItem) bool {
		return contains(item.Genres, genre)
	})
}

// AllForStyle returns every item tagged with the given style.
func (r *Repository) AllForStyle(style string) ([]entities.CollectionItem, error) {
	return r.filtered(func(item entities.CollectionItem) bool {
		return contains(item.Styles, style)
	})
}

func (r *Repository) filtered(keep func(entities.CollectionItem) bool) ([]entities.CollectionItem, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}
	matched := make([]entities.CollectionItem, 0)
	for _, item := range all {
		if keep(item) {
			matched = append(matched, item)
		}
	}
	return matched, nil
}

// DistinctArtists returns every credited artist once, sorted.
func (r *Repository) DistinctArtists() ([]string, error) {
	all, err := r.All()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	artists := make([]string, 0)
	for _, item := range all {
		for _, artist := range item.Artists {
			if !seen[artist] {
				seen[artist] = true
				artists = append(artists, artist)
			}
		}
	}
	sort.Strings(artists)
	return artists, nil
}

// CountByFormat returns the number of items per physical format.
func (r *Repository) CountByFormat() (map[entities.FormatType]int, error) {
	var rows []struct {
		FormatType entities.FormatType
		Total      int
	}
	err := r.db.Model(&entities.CollectionItem{}).
		Select("format_type, COUNT(*) AS total").
		Group("format_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[entities.FormatType]int, len(rows))
	for _, row := range rows {
		counts[row.FormatType] = row.Total
	}
	return counts, nil
}

func contains(values []string, wanted string) bool {
	for _, value := range values {
		if value == wanted {
			return true
		}
	}
	return false
}
