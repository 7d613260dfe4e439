package entities

import (
	"time"
)

// FormatType is the physical medium of a release.
type FormatType string

const (
	FormatVinyl    FormatType = "Vinyl"
	FormatCD       FormatType = "CD"
	FormatCassette FormatType = "Cassette"
	FormatUnknown  FormatType = ""
)

// DiscInfo describes one physical disc entry of a vinyl release,
// e.g. quantity 2, text "Black" for a double LP on black vinyl.
// Rows are owned by either a CollectionItem or a WantlistItem.
type DiscInfo struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	OwnerID   uint   `gorm:"index" json:"-"`
	OwnerType string `gorm:"size:32;index" json:"-"`
	Quantity  int    `json:"quantity"`
	Text      string `gorm:"size:256" json:"text"`
}

// Item is the normalized shape of one Discogs release in the local store.
// CollectionItem and WantlistItem share it and differ only in which table
// they live in.
type Item struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	ReleaseID   int        `gorm:"index" json:"release_id"` // Discogs release id, unique per import batch
	Artists     []string   `gorm:"serializer:json" json:"artists"`
	ReleaseName string     `gorm:"size:512" json:"release_name"`
	ReleaseYear int        `json:"release_year,omitempty"`
	DateAdded   time.Time  `gorm:"index" json:"date_added"`
	Thumbnail   string     `gorm:"size:2048" json:"thumbnail,omitempty"`
	CoverImage  string     `gorm:"size:2048" json:"cover_image,omitempty"`
	Genres      []string   `gorm:"serializer:json" json:"genres,omitempty"`
	Styles      []string   `gorm:"serializer:json" json:"styles,omitempty"`
	FormatType  FormatType `gorm:"size:20;index" json:"format_type,omitempty"`
	Discs       []DiscInfo `gorm:"polymorphic:Owner" json:"discs,omitempty"`
}

// CollectionItem is a release the user owns.
type CollectionItem struct {
	Item
}

func (CollectionItem) TableName() string { return "collection_items" }

// WantlistItem is a release the user wants.
type WantlistItem struct {
	Item
}

func (WantlistItem) TableName() string { return "wantlist_items" }
