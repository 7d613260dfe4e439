package entities

// MusicInfo is the shared shape of the genre and style tables: a free-text
// tag plus the number of collection items carrying it. Instances is derived
// on every import, never patched incrementally.
type MusicInfo struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Text      string `gorm:"size:256;index" json:"text"`
	Instances int    `json:"instances"`
}

// MusicGenre is one genre tag, e.g. "Rock".
type MusicGenre struct {
	MusicInfo
}

func (MusicGenre) TableName() string { return "music_genres" }

// MusicStyle is one style tag, e.g. "Shoegaze".
type MusicStyle struct {
	MusicInfo
}

func (MusicStyle) TableName() string { return "music_styles" }
