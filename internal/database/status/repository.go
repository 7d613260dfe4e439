// Package status computes the aggregate store snapshot served by the
// status endpoint. Everything is counted fresh on every call.
package status

import (
	"gorm.io/gorm"

	"github.com/sdeneef/discodash/internal/entities"
)

// Checker is the connectivity probe the repository consults before
// touching any table.
type Checker interface {
	CanConnect() bool
}

// Repository computes store status snapshots.
type Repository struct {
	db      *gorm.DB
	checker Checker
}

// NewRepository creates a new status repository.
func NewRepository(db *gorm.DB, checker Checker) *Repository {
	return &Repository{db: db, checker: checker}
}

// Status returns a fresh snapshot of the store. When the store is
// unreachable the snapshot only carries the Disconnected flag.
func (r *Repository) Status() (*entities.Status, error) {
	if !r.checker.CanConnect() {
		return &entities.Status{DatabaseStatus: entities.DbStatusDisconnected}, nil
	}

	snapshot := &entities.Status{}

	counts := []struct {
		model any
		out   *int
	}{
		{&entities.CollectionItem{}, &snapshot.CollectionCount},
		{&entities.WantlistItem{}, &snapshot.WantlistCount},
		{&entities.MusicGenre{}, &snapshot.GenreCount},
		{&entities.MusicStyle{}, &snapshot.StyleCount},
	}
	for _, count := range counts {
		var total int64
		if err := r.db.Model(count.model).Count(&total).Error; err != nil {
			return nil, err
		}
		*count.out = int(total)
	}

	formats := []struct {
		format entities.FormatType
		out    *int
	}{
		{entities.FormatVinyl, &snapshot.VinylCount},
		{entities.FormatCD, &snapshot.CDCount},
		{entities.FormatCassette, &snapshot.CassetteCount},
	}
	for _, format := range formats {
		var total int64
		err := r.db.Model(&entities.CollectionItem{}).
			Where("format_type = ?", format.format).
			Count(&total).Error
		if err != nil {
			return nil, err
		}
		*format.out = int(total)
	}

	if snapshot.CollectionCount > 0 && snapshot.WantlistCount > 0 {
		snapshot.DatabaseStatus = entities.DbStatusActive
	} else {
		snapshot.DatabaseStatus = entities.DbStatusEmpty
	}

	return snapshot, nil
}
