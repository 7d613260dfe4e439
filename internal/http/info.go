package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sdeneef/discodash/internal/database"
	"github.com/sdeneef/discodash/internal/facts"
)

// InfoReader lists the distinct values known to the store.
type InfoReader interface {
	DistinctArtists() ([]string, error)
}

// TagReader lists the derived genre and style names.
type TagReader interface {
	GenreTexts() ([]string, error)
	StyleTexts() ([]string, error)
}

// FactSource generates one fact sentence.
type FactSource interface {
	Fact() (string, error)
}

// ConnectionChecker probes store connectivity so info queries can report
// an unreachable database instead of an empty result.
type ConnectionChecker interface {
	CanConnect() bool
}

type InfoController struct {
	info    InfoReader
	tags    TagReader
	facts   FactSource
	checker ConnectionChecker
}

func NewInfoController(info InfoReader, tags TagReader, factSource FactSource, checker ConnectionChecker) *InfoController {
	return &InfoController{
		info:    info,
		tags:    tags,
		facts:   factSource,
		checker: checker,
	}
}

// GetArtists returns every distinct credited artist, sorted.
func (controller *InfoController) GetArtists(c *gin.Context) {
	controller.listValues(c, controller.info.DistinctArtists)
}

// GetGenres returns every known genre name, sorted.
func (controller *InfoController) GetGenres(c *gin.Context) {
	controller.listValues(c, controller.tags.GenreTexts)
}

// GetStyles returns every known style name, sorted.
func (controller *InfoController) GetStyles(c *gin.Context) {
	controller.listValues(c, controller.tags.StyleTexts)
}

// GetFact returns one generated fact sentence.
func (controller *InfoController) GetFact(c *gin.Context) {
	fact, err := controller.facts.Fact()
	if errors.Is(err, database.ErrUnreachable) {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	if errors.Is(err, facts.ErrNoData) {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"fact": fact})
}

func (controller *InfoController) listValues(c *gin.Context, load func() ([]string, error)) {
	if !controller.checker.CanConnect() {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": database.ErrUnreachable.Error()})
		return
	}

	values, err := load()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"values": values, "count": len(values)})
}
