// Package healthz implements the health check endpoint.
package healthz

import (
	"net/http"

	"github.com/forecast-ledger/backend/internal/models"
	"github.com/gin-gonic/gin"
)

func Options(c *gin.Context) {
	c.Header("allow", "OPTIONS, GET")
	c.Status(http.StatusNoContent)
}

// Get returns 200 when the database is reachable and 500 when it is not.
func Get(c *gin.Context) {
	sqlDB, err := models.DB.DB()
	if err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	if err := sqlDB.Ping(); err != nil {
		c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Status(http.StatusOK)
}
