package middleware

import (
	"net/http"
	"strings"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/gin-gonic/gin"
)

var allowedHeaders = strings.Join([]string{
	"Content-Type",
	types.HeaderCompanyID,
	types.HeaderUserID,
	types.HeaderRequestID,
}, ", ")

// CORSMiddleware handles CORS headers. Content-Disposition is exposed so
// browsers can read export filenames.
func CORSMiddleware(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	c.Writer.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
	c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, "+types.HeaderRequestID)
	c.Writer.Header().Set("Access-Control-Max-Age", "86400")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}
