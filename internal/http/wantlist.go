package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sdeneef/discodash/internal/entities"
)

// WantlistReader provides read access to the wantlist table.
type WantlistReader interface {
	All() ([]entities.WantlistItem, error)
}

type WantlistController struct {
	reader WantlistReader
}

func NewWantlistController(reader WantlistReader) *WantlistController {
	return &WantlistController{
		reader: reader,
	}
}

// GetWantlist returns every wantlist item.
func (controller *WantlistController) GetWantlist(c *gin.Context) {
	items, err := controller.reader.All()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}
