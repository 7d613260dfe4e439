package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sdeneef/discodash/internal/database/collection"
	"github.com/sdeneef/discodash/internal/entities"
)

const defaultRecentCount = 5

// CollectionReader covers the collection queries the dashboard widgets use.
type CollectionReader interface {
	Random(format entities.FormatType) (*entities.CollectionItem, error)
	Recent(n int) ([]entities.CollectionItem, error)
	AllForArtist(artist string) ([]entities.CollectionItem, error)
	AllForGenre(genre string) ([]entities.CollectionItem, error)
	AllForStyle(style string) ([]entities.CollectionItem, error)
}

type CollectionController struct {
	reader CollectionReader
}

func NewCollectionController(reader CollectionReader) *CollectionController {
	return &CollectionController{
		reader: reader,
	}
}

// GetRandomItem returns one uniformly random collection item. An optional
// format query parameter narrows the draw to one physical format.
func (controller *CollectionController) GetRandomItem(c *gin.Context) {
	format := entities.FormatType(c.Query("format"))
	switch format {
	case entities.FormatUnknown, entities.FormatVinyl, entities.FormatCD, entities.FormatCassette:
	default:
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "format must be one of Vinyl, CD, Cassette"})
		return
	}

	item, err := controller.reader.Random(format)
	if errors.Is(err, collection.ErrNoItems) {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, item)
}

// GetRecentItems returns the most recently added items, newest first.
func (controller *CollectionController) GetRecentItems(c *gin.Context) {
	count := defaultRecentCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = parsed
	}

	items, err := controller.reader.Recent(count)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

// GetItems returns all items matching exactly one of the artist, genre or
// style query parameters.
func (controller *CollectionController) GetItems(c *gin.Context) {
	artist := c.Query("artist")
	genre := c.Query("genre")
	style := c.Query("style")

	var items []entities.CollectionItem
	var err error
	switch {
	case artist != "" && genre == "" && style == "":
		items, err = controller.reader.AllForArtist(artist)
	case genre != "" && artist == "" && style == "":
		items, err = controller.reader.AllForGenre(genre)
	case style != "" && artist == "" && genre == "":
		items, err = controller.reader.AllForStyle(style)
	default:
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "exactly one of artist, genre or style is required"})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
