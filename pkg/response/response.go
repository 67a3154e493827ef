// Package response holds the JSON shapes handlers reply with.
package response

import "github.com/gin-gonic/gin"

// Error writes the standard error payload. Internal error text is passed
// through as-is.
func Error(c *gin.Context, status int, err error) {
	c.JSON(status, gin.H{"error": err.Error()})
}

// Message writes a plain confirmation payload.
func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}
