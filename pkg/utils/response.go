package utils

import "github.com/gin-gonic/gin"

// ErrorResponse writes {"error": message}.
func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// SuccessResponse writes message alongside the keys of data at the top level.
func SuccessResponse(c *gin.Context, status int, message string, data gin.H) {
	body := gin.H{}
	if message != "" {
		body["message"] = message
	}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}
