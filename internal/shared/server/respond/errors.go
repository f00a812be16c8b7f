package respond

import (
	"github.com/gin-gonic/gin"

	"uigen-backend/internal/shared/telemetry"
)

// ErrorResponse is the wire shape for every failed request: a single
// human-readable message. There is no partial-success shape.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs and sends a standardized error response.
func Error(c *gin.Context, status int, message string) {
	telemetry.Error("http.error", map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
		"client_ip":  c.ClientIP(),
	})

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
