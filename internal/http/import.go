package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sdeneef/discodash/internal/importer"
)

// ImportRunner triggers one full import run.
type ImportRunner interface {
	Run(ctx context.Context) (*importer.Summary, error)
}

type ImportController struct {
	runner ImportRunner
}

func NewImportController(runner ImportRunner) *ImportController {
	return &ImportController{
		runner: runner,
	}
}

// RunImport performs a full-replace import. Failures report the stage that
// went wrong; the previous data set stays untouched on any error.
func (controller *ImportController) RunImport(c *gin.Context) {
	summary, err := controller.runner.Run(c.Request.Context())
	if errors.Is(err, importer.ErrInvalidConfiguration) || errors.Is(err, importer.ErrInvalidProfile) {
		c.IndentedJSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var stageErr *importer.StageError
	if errors.As(err, &stageErr) {
		c.IndentedJSON(http.StatusBadGateway, gin.H{
			"error": stageErr.Error(),
			"stage": string(stageErr.Stage),
		})
		return
	}
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.IndentedJSON(http.StatusOK, gin.H{"message": "Data imported!", "summary": summary})
}
