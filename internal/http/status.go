package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sdeneef/discodash/internal/entities"
)

// StatusReader computes a fresh store snapshot.
type StatusReader interface {
	Status() (*entities.Status, error)
}

type StatusController struct {
	reader StatusReader
}

func NewStatusController(reader StatusReader) *StatusController {
	return &StatusController{
		reader: reader,
	}
}

// GetStatus returns the aggregate store snapshot. A disconnected store is
// reported as 503 rather than a snapshot full of zeroes.
func (controller *StatusController) GetStatus(c *gin.Context) {
	snapshot, err := controller.reader.Status()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if snapshot.DatabaseStatus == entities.DbStatusDisconnected {
		c.IndentedJSON(http.StatusServiceUnavailable, gin.H{"error": "cannot connect to database"})
		return
	}

	c.IndentedJSON(http.StatusOK, snapshot)
}
