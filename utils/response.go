package utils

import "github.com/gin-gonic/gin"

// RespondWithError aborts the request with a JSON error payload
func RespondWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"success": false, "error": message})
}
