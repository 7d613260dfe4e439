// Package database owns the SQLite store: connection setup, migrations
// and the transaction wrapper the importer runs inside. Per-concern query
// repositories live in the subpackages.
package database

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sdeneef/discodash/internal/entities"
)

// ErrUnreachable indicates the store cannot be reached. Read endpoints
// surface it as a distinct condition from "no data".
var ErrUnreachable = errors.New("cannot connect to database")

type Database struct {
	DB *gorm.DB
}

func NewDatabase(dbPath string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&entities.CollectionItem{},
		&entities.WantlistItem{},
		&entities.DiscInfo{},
		&entities.MusicGenre{},
		&entities.MusicStyle{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// CanConnect reports whether the underlying connection is usable.
func (d *Database) CanConnect() bool {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return false
	}
	return sqlDB.Ping() == nil
}

// Transaction runs fn inside a single store transaction. Any error from fn
// rolls the whole transaction back.
func (d *Database) Transaction(fn func(tx *gorm.DB) error) error {
	return d.DB.Transaction(fn)
}

// Truncate deletes every imported row and resets the identity counters so
// a re-import starts from a clean key space. Meant to run inside the
// import transaction.
func Truncate(tx *gorm.DB) error {
	tables := []string{
		"collection_items",
		"wantlist_items",
		"disc_infos",
		"music_genres",
		"music_styles",
	}
	for _, table := range tables {
		if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	// sqlite keeps AUTOINCREMENT state in sqlite_sequence; the table only
	// exists once an autoincrement insert has happened
	if err := tx.Exec("DELETE FROM sqlite_sequence WHERE name IN (?, ?, ?, ?, ?)",
		"collection_items", "wantlist_items", "disc_infos", "music_genres", "music_styles").Error; err != nil {
		log.Printf("Could not reset sqlite_sequence: %v", err)
	}
	return nil
}
