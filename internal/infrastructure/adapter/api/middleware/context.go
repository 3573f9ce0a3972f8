package middleware

import (
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// Gin context keys set by the middlewares
const (
	ContextKeyRequestID = "request_id"
	ContextKeyClaims    = "jwt_claims"
)

// Claims returns the verified token claims of the caller
func Claims(c *gin.Context) (*auth.Claims, bool) {
	value, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok && claims != nil
}

// RequestID returns the id assigned to the current request
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}
