package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Global
		Database
		Discogs
		ImportSync
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Path string
	}
	Discogs struct {
		Username  string
		Token     string
		UserAgent string // identifies this install in the User-Agent header
		BaseURL   string
	}
	ImportSync struct {
		Enabled  bool
		Schedule string // Cron format: "0 6 * * *" = daily at 06:00
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8272)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("discogs_base_url", DefaultDiscogsBaseURL)
	v.SetDefault("import_sync_enabled", false)
	v.SetDefault("import_sync_schedule", "0 6 * * *") // Daily at 06:00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Discogs: Discogs{
			Username:  v.GetString("DISCOGS_USERNAME"),
			Token:     v.GetString("DISCOGS_TOKEN"),
			UserAgent: v.GetString("DISCOGS_USER_AGENT"),
			BaseURL:   v.GetString("DISCOGS_BASE_URL"),
		},
		ImportSync: ImportSync{
			Enabled:  v.GetBool("IMPORT_SYNC_ENABLED"),
			Schedule: v.GetString("IMPORT_SYNC_SCHEDULE"),
		},
	}
}
