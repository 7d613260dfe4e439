package config

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./discodash.db"

	// DefaultDiscogsBaseURL is the production Discogs API endpoint
	DefaultDiscogsBaseURL = "https://api.discogs.com"
)
