package handlers

import (
	"net/http"

	"kilnbot/utils"

	"github.com/gin-gonic/gin"
)

// HealthHandler reports the last observed state of the backing services.
func HealthHandler(c *gin.Context) {
	status := utils.GetHealthStatus()
	code := http.StatusOK
	if !status.Mongo || !status.Redis {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, status)
}
