package handler

import (
	"errors"
	"net/http"
	"strconv"

	domainerr "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/dto"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/middleware"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/validation"
	"github.com/gin-gonic/gin"
)

// statusForError maps domain errors to HTTP status codes
func statusForError(err error) int {
	switch {
	case domainerr.IsValidationError(err), domainerr.IsInsufficientBalanceError(err):
		return http.StatusBadRequest
	case errors.Is(err, domainerr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domainerr.ErrForbidden), errors.Is(err, domainerr.ErrUserSuspended):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case errors.Is(err, domainerr.ErrDuplicateUser),
		errors.Is(err, domainerr.ErrDuplicateTransaction),
		errors.Is(err, domainerr.ErrImmutableTransaction),
		errors.Is(err, domainerr.ErrConstraintViolation),
		domainerr.IsUserLockedError(err):
		return http.StatusConflict
	case errors.Is(err, domainerr.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// messageForError hides internal details behind a generic message
func messageForError(err error, status int) string {
	if status >= http.StatusInternalServerError {
		return "Internal server error"
	}
	var mutationErr *domainerr.MutationError
	if errors.As(err, &mutationErr) {
		return mutationErr.Err.Error()
	}
	return err.Error()
}

// respondError writes the error body with the status mapped from err
func respondError(c *gin.Context, logger coreport.Logger, err error, logMessage string) {
	respondErrorWithStatus(c, logger, err, statusForError(err), logMessage)
}

func respondErrorWithStatus(c *gin.Context, logger coreport.Logger, err error, status int, logMessage string) {
	fields := map[string]any{
		"request_id": middleware.RequestID(c),
		"status":     status,
		"error":      err.Error(),
	}
	var loggable interface{ LogFields() map[string]any }
	if errors.As(err, &loggable) {
		for k, v := range loggable.LogFields() {
			fields[k] = v
		}
	}

	if status >= http.StatusInternalServerError {
		logger.Error(logMessage, fields)
	} else {
		logger.Warn(logMessage, fields)
	}

	_ = c.Error(err)
	c.JSON(status, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: messageForError(err, status),
	})
}

// respondBindError answers a request whose body or query failed binding
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.CodeInvalidRequest,
		Message: validation.Describe(err),
	})
}

// currentUser returns the caller's claims; RequireAuth guarantees they exist on protected routes
func currentUser(c *gin.Context) (uint64, string, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.CodeUnauthorized,
			Message: "Authentication required",
		})
		return 0, "", false
	}
	return claims.UserID, claims.Username, true
}

// pathID parses a positive numeric path parameter
func pathID(c *gin.Context, name string, invalid error) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(invalid),
			Message: "Invalid " + name + " format",
		})
		return 0, false
	}
	return id, true
}
