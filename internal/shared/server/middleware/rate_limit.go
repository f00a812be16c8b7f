package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"uigen-backend/internal/admission"
	"uigen-backend/internal/shared/metrics"
	"uigen-backend/internal/shared/telemetry"
)

// RateLimitMessage is the terminal, user-visible admission rejection.
const RateLimitMessage = "Rate limit exceeded. Try again in a minute."

// RateLimit gates requests through the admission controller before any other
// processing. The client identifier comes from the first X-Forwarded-For
// entry, or a single shared bucket when the header is absent.
func RateLimit(ctrl *admission.Controller) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := admission.ClientID(c.GetHeader("X-Forwarded-For"))

		allowed, err := ctrl.TryAcquire(c.Request.Context(), id)
		if err != nil {
			// A broken limiter store must not take the service down with it;
			// fail open and keep serving.
			telemetry.Warn("admission.store_error", map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      err.Error(),
			})
			c.Next()
			return
		}
		if allowed {
			c.Next()
			return
		}

		metrics.IncRateLimited()
		retryAfterSeconds := int(math.Ceil(ctrl.Window().Seconds()))
		if retryAfterSeconds <= 0 {
			retryAfterSeconds = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfterSeconds))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error": RateLimitMessage,
		})
	}
}
