package middleware

import (
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the request id in both directions
const RequestIDHeader = "X-Request-ID"

const maxRequestIDLength = 64

// RequestIDMiddleware reuses the caller's X-Request-ID or generates one, echoes it back
// and stores it in the request context for logging
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			requestID = uuid.NewString()
		}

		c.Set(ContextKeyRequestID, requestID)
		c.Header(RequestIDHeader, requestID)
		c.Request = c.Request.WithContext(coreport.ContextWithRequestID(c.Request.Context(), requestID))

		c.Next()
	}
}
