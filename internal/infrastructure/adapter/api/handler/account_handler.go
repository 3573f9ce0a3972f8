package handler

import (
	"net/http"

	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles registration and the caller's own account
type AccountHandler struct {
	accountUseCase usecase.AccountUseCase
	logger         coreport.Logger
}

// NewAccountHandler creates a new account handler instance
func NewAccountHandler(accountUseCase usecase.AccountUseCase, logger coreport.Logger) *AccountHandler {
	return &AccountHandler{
		accountUseCase: accountUseCase,
		logger:         logger.Named("account_handler"),
	}
}

// Register handles POST /api/accounts/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	account, err := h.accountUseCase.Register(c.Request.Context(), usecase.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		respondError(c, h.logger, err, "Registration failed")
		return
	}

	c.JSON(http.StatusCreated, dto.NewAccountResponse(account))
}

// Me handles GET /api/accounts/me
func (h *AccountHandler) Me(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	account, err := h.accountUseCase.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Error getting account")
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// UpdateMe handles PATCH /api/accounts/me
func (h *AccountHandler) UpdateMe(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, err := h.accountUseCase.UpdateContact(c.Request.Context(), usecase.UpdateContactRequest{
		UserID: userID,
		Email:  req.Email,
		Phone:  req.Phone,
	})
	if err != nil {
		respondError(c, h.logger, err, "Error updating account")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
