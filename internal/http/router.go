package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries every dependency the router needs, so tests can
// assemble a router from fakes without touching the real store.
type RouterConfig struct {
	Collection CollectionReader
	Wantlist   WantlistReader
	Info       InfoReader
	Tags       TagReader
	Facts      FactSource
	Status     StatusReader
	Importer   ImportRunner
	Checker    ConnectionChecker
	Version    string
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	health := NewHealthController(cfg.Checker, cfg.Version)
	collectionController := NewCollectionController(cfg.Collection)
	wantlistController := NewWantlistController(cfg.Wantlist)
	infoController := NewInfoController(cfg.Info, cfg.Tags, cfg.Facts, cfg.Checker)
	statusController := NewStatusController(cfg.Status)
	importController := NewImportController(cfg.Importer)

	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := router.Group("/api")
	{
		api.GET("/collection/random", collectionController.GetRandomItem)
		api.GET("/collection/recent", collectionController.GetRecentItems)
		api.GET("/collection/items", collectionController.GetItems)
		api.GET("/collection/artists", infoController.GetArtists)
		api.GET("/collection/genres", infoController.GetGenres)
		api.GET("/collection/styles", infoController.GetStyles)
		api.GET("/wantlist", wantlistController.GetWantlist)
		api.GET("/status", statusController.GetStatus)
		api.GET("/fact", infoController.GetFact)
		api.POST("/import", importController.RunImport)
	}

	return router
}
