// Package musicinfo provides read access to the derived genre and style
// tables. Both share the MusicInfo shape and only differ in which table
// backs them.
package musicinfo

import (
	"sort"

	"gorm.io/gorm"

	"github.com/sdeneef/discodash/internal/entities"
)

// Repository handles genre and style queries.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new musicinfo repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Genres returns every genre row ranked by instance count descending,
// ties broken by text ascending.
func (r *Repository) Genres() ([]entities.MusicInfo, error) {
	var genres []entities.MusicGenre
	if err := r.db.Find(&genres).Error; err != nil {
		return nil, err
	}
	infos := make([]entities.MusicInfo, 0, len(genres))
	for _, genre := range genres {
		infos = append(infos, genre.MusicInfo)
	}
	return ranked(infos), nil
}

// Styles returns every style row ranked by instance count descending,
// ties broken by text ascending.
func (r *Repository) Styles() ([]entities.MusicInfo, error) {
	var styles []entities.MusicStyle
	if err := r.db.Find(&styles).Error; err != nil {
		return nil, err
	}
	infos := make([]entities.MusicInfo, 0, len(styles))
	for _, style := range styles {
		infos = append(infos, style.MusicInfo)
	}
	return ranked(infos), nil
}

// GenreTexts returns every known genre name, sorted.
func (r *Repository) GenreTexts() ([]string, error) {
	genres, err := r.Genres()
	if err != nil {
		return nil, err
	}
	return texts(genres), nil
}

// StyleTexts returns every known style name, sorted.
func (r *Repository) StyleTexts() ([]string, error) {
	styles, err := r.Styles()
	if err != nil {
		return nil, err
	}
	return texts(styles), nil
}

func ranked(infos []entities.MusicInfo) []entities.MusicInfo {
	sort.SliceStable(infos, func(i, j int) bool {
		if infos[i].Instances != infos[j].Instances {
			return infos[i].Instances > infos[j].Instances
		}
		return infos[i].Text < infos[j].Text
	})
	return infos
}

func texts(infos []entities.MusicInfo) []string {
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Text)
	}
	sort.Strings(names)
	return names
}
