package entities

// DbStatus values reported by the status endpoint.
const (
	DbStatusActive       = "Active"       // store is up and holds data
	DbStatusEmpty        = "Empty"        // store is up but not yet imported
	DbStatusDisconnected = "Disconnected" // store cannot be reached
)

// Status is a fresh snapshot of the store contents. It is computed on
// every request and never persisted.
type Status struct {
	DatabaseStatus  string `json:"database_status"`
	CollectionCount int    `json:"collection_count"`
	WantlistCount   int    `json:"wantlist_count"`
	GenreCount      int    `json:"genre_count"`
	StyleCount      int    `json:"style_count"`
	VinylCount      int    `json:"vinyl_count"`
	CDCount         int    `json:"cd_count"`
	CassetteCount   int    `json:"cassette_count"`
}
