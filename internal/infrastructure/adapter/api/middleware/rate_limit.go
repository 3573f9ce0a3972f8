package middleware

import (
	"math"
	"net/http"
	"strconv"

	domainerr "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/dto"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/ratelimit"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients retry a charge safely
const IdempotencyKeyHeader = "Idempotency-Key"

// RateLimitRecorder counts rejected requests
type RateLimitRecorder interface {
	RecordRateLimited(route string)
}

// RateLimit throttles per authenticated user, or per client IP for anonymous calls.
// Limiter errors let the request through; a nil limiter disables throttling.
func RateLimit(limiter ratelimit.Limiter, recorder RateLimitRecorder, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}

		key := "ip:" + c.ClientIP()
		if claims, ok := Claims(c); ok {
			key = "user:" + strconv.FormatUint(claims.UserID, 10)
		}
		key = c.FullPath() + ":" + key

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			c.Header("X-RateLimit-Error", "limiter-unavailable")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(decision.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))

		if !decision.Allowed {
			retryAfter := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(max(retryAfter, 1)))
			if recorder != nil {
				recorder.RecordRateLimited(c.FullPath())
			}
			logger.Warn("Rate limit exceeded", map[string]any{
				"key":        key,
				"request_id": RequestID(c),
			})
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrRateLimited),
				Message: "Too many requests, please try again later",
			})
			return
		}

		c.Next()
	}
}
