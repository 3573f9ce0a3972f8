package handler

import (
	"net/http"

	domainerr "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdminHandler serves the read-only staff views and suspension management.
// Ledger transactions have no create, update or delete route here.
type AdminHandler struct {
	currencyUseCase usecase.CurrencyUseCase
	accountUseCase  usecase.AccountUseCase
	logger          coreport.Logger
}

// NewAdminHandler creates a new admin handler instance
func NewAdminHandler(
	currencyUseCase usecase.CurrencyUseCase,
	accountUseCase usecase.AccountUseCase,
	logger coreport.Logger,
) *AdminHandler {
	return &AdminHandler{
		currencyUseCase: currencyUseCase,
		accountUseCase:  accountUseCase,
		logger:          logger.Named("admin_handler"),
	}
}

// ListCurrencies handles GET /api/admin/currencies
func (h *AdminHandler) ListCurrencies(c *gin.Context) {
	var query dto.AdminCurrencyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.currencyUseCase.AdminListCurrencies(c.Request.Context(), usecase.AdminCurrencyFilter{
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err, "Error listing currencies")
		return
	}

	results := make([]dto.AdminCurrencyResponse, 0, len(page.Items))
	for i := range page.Items {
		results = append(results, adminCurrency(&page.Items[i]))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, page.Count, page.Page, page.PageSize))
}

// GetCurrency handles GET /api/admin/currencies/:userId
func (h *AdminHandler) GetCurrency(c *gin.Context) {
	userID, ok := pathID(c, "userId", domainerr.ErrInvalidUserID)
	if !ok {
		return
	}

	view, err := h.currencyUseCase.AdminGetCurrency(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Error getting currency")
		return
	}

	c.JSON(http.StatusOK, adminCurrency(view))
}

// ListTransactions handles GET /api/admin/transactions
func (h *AdminHandler) ListTransactions(c *gin.Context) {
	var query dto.AdminTransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.currencyUseCase.AdminListTransactions(c.Request.Context(), usecase.AdminTransactionFilter{
		UserID:    query.UserID,
		Type:      query.Type,
		Search:    query.Search,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Page:      query.Page,
		PageSize:  query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err, "Error listing transactions")
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionPageResponse(page, ""))
}

// GetTransaction handles GET /api/admin/transactions/:id
func (h *AdminHandler) GetTransaction(c *gin.Context) {
	id, ok := pathID(c, "id", domainerr.ErrInvalidRequest)
	if !ok {
		return
	}

	tx, err := h.currencyUseCase.AdminGetTransaction(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Error getting transaction")
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(tx, ""))
}

// ListUsers handles GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	var query dto.AdminUserListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.accountUseCase.AdminListUsers(c.Request.Context(), usecase.AdminUserFilter{
		Search:    query.Search,
		Suspended: query.Suspended,
		Page:      query.Page,
		PageSize:  query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err, "Error listing users")
		return
	}

	results := make([]dto.UserResponse, 0, len(page.Items))
	for _, user := range page.Items {
		results = append(results, dto.NewUserResponse(user))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, page.Count, page.Page, page.PageSize))
}

// ListProfiles handles GET /api/admin/profiles
func (h *AdminHandler) ListProfiles(c *gin.Context) {
	var query dto.AdminProfileListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.accountUseCase.AdminListProfiles(c.Request.Context(), usecase.AdminProfileFilter{
		Search:   query.Search,
		Level:    query.Level,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err, "Error listing profiles")
		return
	}

	results := make([]dto.ProfileResponse, 0, len(page.Items))
	for i := range page.Items {
		results = append(results, dto.NewProfileResponse(page.Items[i].Profile, page.Items[i].Username))
	}
	c.JSON(http.StatusOK, dto.NewPageResponse(results, page.Count, page.Page, page.PageSize))
}

// SuspendUser handles POST /api/admin/users/:userId/suspend
func (h *AdminHandler) SuspendUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", domainerr.ErrInvalidUserID)
	if !ok {
		return
	}

	var req dto.SuspendRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	user, err := h.accountUseCase.Suspend(c.Request.Context(), userID, req.Until)
	if err != nil {
		respondError(c, h.logger, err, "Error suspending user")
		return
	}

	h.logger.Info("User suspended", map[string]any{
		"user_id": userID,
		"until":   req.Until,
	})
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UnsuspendUser handles DELETE /api/admin/users/:userId/suspend
func (h *AdminHandler) UnsuspendUser(c *gin.Context) {
	userID, ok := pathID(c, "userId", domainerr.ErrInvalidUserID)
	if !ok {
		return
	}

	user, err := h.accountUseCase.Unsuspend(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Error lifting suspension")
		return
	}

	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func adminCurrency(view *persistence.CurrencyView) dto.AdminCurrencyResponse {
	return dto.AdminCurrencyResponse{
		CurrencyResponse: dto.NewCurrencyResponse(view.Currency, view.Username),
		Email:            view.Email,
	}
}
