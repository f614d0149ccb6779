package api

import (
	"net/http"
	"strconv"

	"github.com/fsdevblog/groph-crm/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
)

func getUserIDFromContext(c *gin.Context) int64 {
	return c.GetInt64(middlewares.CurrentUserIDKey)
}

// parseIDParam разбирает path параметр :id. При невалидном значении пишет 400
// и возвращает false вторым значением.
func parseIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
