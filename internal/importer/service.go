// Package importer performs the full-replace import: it validates the
// configured Discogs profile, then truncates and repopulates every
// imported table inside a single transaction. Readers only ever observe
// the pre- or post-import state.
package importer

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/sdeneef/discodash/internal/database"
	"github.com/sdeneef/discodash/internal/discogs"
	"github.com/sdeneef/discodash/internal/entities"
)

// ProfileValidator confirms the configured account/token pair is usable.
type ProfileValidator interface {
	ProfileIsValid(ctx context.Context) (bool, error)
}

// Pipeline produces the normalized, deduplicated item set for one
// resource.
type Pipeline interface {
	Harvest(ctx context.Context, resource discogs.Resource) ([]entities.Item, error)
}

// Summary reports what one successful import run persisted.
type Summary struct {
	CollectionItems int `json:"collection_items"`
	WantlistItems   int `json:"wantlist_items"`
	Genres          int `json:"genres"`
	Styles          int `json:"styles"`
}

// Service coordinates one import run. It exclusively owns the store
// transaction for the duration of the run.
type Service struct {
	db        *database.Database
	validator ProfileValidator
	pipeline  Pipeline
	creds     discogs.Credentials
}

// NewService creates an import service.
func NewService(db *database.Database, validator ProfileValidator, pipeline Pipeline, creds discogs.Credentials) *Service {
	return &Service{
		db:        db,
		validator: validator,
		pipeline:  pipeline,
		creds:     creds,
	}
}

// Run performs one full import. Any failure after profile validation rolls
// the whole transaction back, leaving the previous data set intact; the
// returned error names the failing stage.
func (s *Service) Run(ctx context.Context) (*Summary, error) {
	if s.creds.Username == "" || s.creds.Token == "" || s.creds.UserAgent == "" {
		return nil, ErrInvalidConfiguration
	}

	valid, err := s.validator.ProfileIsValid(ctx)
	if err != nil {
		return nil, &StageError{Stage: StageProfile, Err: err}
	}
	if !valid {
		return nil, ErrInvalidProfile
	}

	summary := &Summary{}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := database.Truncate(tx); err != nil {
			return &StageError{Stage: StageTruncate, Err: err}
		}

		if err := s.importCollection(ctx, tx, summary); err != nil {
			return &StageError{Stage: StageCollection, Err: err}
		}

		if err := s.importWantlist(ctx, tx, summary); err != nil {
			return &StageError{Stage: StageWantlist, Err: err}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Import complete: %d collection items, %d wantlist items, %d genres, %d styles",
		summary.CollectionItems, summary.WantlistItems, summary.Genres, summary.Styles)

	return summary, nil
}

func (s *Service) importCollection(ctx context.Context, tx *gorm.DB, summary *Summary) error {
	items, err := s.pipeline.Harvest(ctx, discogs.ResourceCollection)
	if err != nil {
		return err
	}

	rows := make([]entities.CollectionItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.CollectionItem{Item: item})
	}
	if len(rows) > 0 {
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return err
		}
	}
	summary.CollectionItems = len(rows)

	// Genre and style instance counts derive from collection items only;
	// the wantlist never contributes
	genres := tagCounts(items, func(item entities.Item) []string { return item.Genres })
	styles := tagCounts(items, func(item entities.Item) []string { return item.Styles })

	genreRows := make([]entities.MusicGenre, 0, len(genres))
	for _, info := range genres {
		genreRows = append(genreRows, entities.MusicGenre{MusicInfo: info})
	}
	if len(genreRows) > 0 {
		if err := tx.CreateInBatches(genreRows, 100).Error; err != nil {
			return err
		}
	}
	summary.Genres = len(genreRows)

	styleRows := make([]entities.MusicStyle, 0, len(styles))
	for _, info := range styles {
		styleRows = append(styleRows, entities.MusicStyle{MusicInfo: info})
	}
	if len(styleRows) > 0 {
		if err := tx.CreateInBatches(styleRows, 100).Error; err != nil {
			return err
		}
	}
	summary.Styles = len(styleRows)

	return nil
}

func (s *Service) importWantlist(ctx context.Context, tx *gorm.DB, summary *Summary) error {
	items, err := s.pipeline.Harvest(ctx, discogs.ResourceWantlist)
	if err != nil {
		return err
	}

	rows := make([]entities.WantlistItem, 0, len(items))
	for _, item := range items {
		rows = append(rows, entities.WantlistItem{Item: item})
	}
	if len(rows) > 0 {
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return err
		}
	}
	summary.WantlistItems = len(rows)

	return nil
}

// tagCounts counts how many items carry each tag, preserving the order the
// tags were first seen in.
func tagCounts(items []entities.Item, tagsOf func(entities.Item) []string) []entities.MusicInfo {
	counts := make(map[string]int)
	order := make([]string, 0)

	for _, item := range items {
		for _, tag := range tagsOf(item) {
			if _, seen := counts[tag]; !seen {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	infos := make([]entities.MusicInfo, 0, len(order))
	for _, tag := range order {
		infos = append(infos, entities.MusicInfo{Text: tag, Instances: counts[tag]})
	}
	return infos
}
