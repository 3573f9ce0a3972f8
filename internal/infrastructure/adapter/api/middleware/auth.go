package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/dto"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// RequireAuth rejects requests without a valid "Authorization: Bearer <token>" header
func RequireAuth(verifier TokenVerifier, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			logger.Debug("Rejected bearer token", map[string]any{
				"request_id": RequestID(c),
				"error":      err.Error(),
			})
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireRole rejects authenticated callers whose token lacks role
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			abortUnauthorized(c, "Authentication required")
			return
		}
		if claims.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="api"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrUnauthorized),
		Message: message,
	})
}
