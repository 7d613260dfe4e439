package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	checker ConnectionChecker
	version string
}

func NewHealthController(checker ConnectionChecker, version string) *HealthController {
	return &HealthController{
		checker: checker,
		version: version,
	}
}

// Status reports process liveness and store connectivity.
func (controller *HealthController) Status(c *gin.Context) {
	dbStatus := "ok"
	code := http.StatusOK
	if !controller.checker.CanConnect() {
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	c.IndentedJSON(code, gin.H{
		"status":   "up",
		"database": dbStatus,
		"version":  controller.version,
	})
}
