package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sdeneef/discodash/internal/config"
	"github.com/sdeneef/discodash/internal/database"
	"github.com/sdeneef/discodash/internal/database/collection"
	"github.com/sdeneef/discodash/internal/database/musicinfo"
	"github.com/sdeneef/discodash/internal/database/status"
	"github.com/sdeneef/discodash/internal/database/wantlist"
	"github.com/sdeneef/discodash/internal/discogs"
	"github.com/sdeneef/discodash/internal/facts"
	http_controllers "github.com/sdeneef/discodash/internal/http"
	"github.com/sdeneef/discodash/internal/importer"
	"github.com/sdeneef/discodash/internal/scheduler"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts down within
// the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// BuildImporter wires the import service from configuration. Shared by the
// server and the one-shot CLI import.
func BuildImporter(cfg *config.Config, db *database.Database) *importer.Service {
	creds := discogs.Credentials{
		Username:  cfg.Discogs.Username,
		Token:     cfg.Discogs.Token,
		UserAgent: cfg.Discogs.UserAgent,
	}
	client := discogs.NewClient(cfg.Discogs.BaseURL, creds)
	harvester := discogs.NewHarvester(client)
	return importer.NewService(db, client, harvester, creds)
}

// Run wires the full application and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting discodash v%s", version)

	if cfg.Discogs.Token == "" {
		log.Printf("WARNING: Discogs token is not set. Imports will fail until 'DISCOGS_TOKEN' is configured.")
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	importService := BuildImporter(cfg, db)

	collectionRepo := collection.NewRepository(db.DB)
	wantlistRepo := wantlist.NewRepository(db.DB)
	musicinfoRepo := musicinfo.NewRepository(db.DB)
	statusRepo := status.NewRepository(db.DB, db)
	factGenerator := facts.NewGenerator(db, collectionRepo, musicinfoRepo)

	importScheduler := scheduler.NewImportScheduler(importService, cfg.ImportSync)
	if err := importScheduler.Start(); err != nil {
		log.Fatalf("Failed to start import scheduler: %v", err)
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Collection: collectionRepo,
		Wantlist:   wantlistRepo,
		Info:       collectionRepo,
		Tags:       musicinfoRepo,
		Facts:      factGenerator,
		Status:     statusRepo,
		Importer:   importService,
		Checker:    db,
		Version:    version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		importScheduler.Stop()
	})
}
