package common

import "github.com/gin-gonic/gin"

// Envelope is the uniform response shape for every API endpoint
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	Error   any  `json:"error"`
}

// RespondSuccess writes a success envelope with the given payload
func RespondSuccess(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success: true,
		Data:    data,
		Error:   nil,
	})
}

// RespondError writes an error envelope with the given message
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{
		Success: false,
		Data:    nil,
		Error:   message,
	})
}

// AbortWithError writes an error envelope and stops the handler chain
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Data:    nil,
		Error:   message,
	})
}
