package handler

import (
	"net/http"
	"strings"

	domainerr "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/dto"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// CurrencyHandler serves the caller's own ledger
type CurrencyHandler struct {
	currencyUseCase usecase.CurrencyUseCase
	logger          coreport.Logger
}

// NewCurrencyHandler creates a new currency handler instance
func NewCurrencyHandler(currencyUseCase usecase.CurrencyUseCase, logger coreport.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currencyUseCase: currencyUseCase,
		logger:          logger.Named("currency_handler"),
	}
}

// GetCurrency handles GET /api/currency. The ledger is created on first access, answered with 201.
func (h *CurrencyHandler) GetCurrency(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	currency, created, err := h.currencyUseCase.GetCurrency(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err, "Error getting currency")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, dto.NewCurrencyResponse(currency, username))
}

// ListTransactions handles GET /api/currency/transactions
func (h *CurrencyHandler) ListTransactions(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	var query dto.TransactionListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.currencyUseCase.ListTransactions(c.Request.Context(), usecase.TransactionFilter{
		UserID:    userID,
		Type:      query.Type,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Page:      query.Page,
		PageSize:  query.PageSize,
	})
	if err != nil {
		respondError(c, h.logger, err, "Error listing transactions")
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionPageResponse(page, username))
}

// Charge handles POST /api/currency/charge. Every rejected charge is answered with 400
// except infrastructure failures.
func (h *CurrencyHandler) Charge(c *gin.Context) {
	userID, username, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.currencyUseCase.Charge(c.Request.Context(), usecase.ChargeRequest{
		UserID:         userID,
		Amount:         strings.TrimSpace(string(req.Amount)),
		Description:    req.Description,
		IdempotencyKey: strings.TrimSpace(c.GetHeader(middleware.IdempotencyKeyHeader)),
		IPAddress:      c.ClientIP(),
	})
	if err != nil {
		status := http.StatusBadRequest
		if isInfrastructureError(err) {
			status = http.StatusInternalServerError
		}
		respondErrorWithStatus(c, h.logger, err, status, "Charge failed")
		return
	}

	if result.Replayed {
		c.Header("Idempotent-Replayed", "true")
	}

	c.JSON(http.StatusOK, dto.ChargeResponse{
		Message:     dto.ChargeSuccessMessage,
		Currency:    dto.NewCurrencyResponse(result.Currency, username),
		Transaction: dto.NewTransactionResponse(result.Transaction, username),
	})
}

func isInfrastructureError(err error) bool {
	code := domainerr.ErrorCode(err)
	return code == domainerr.CodeInternalServer || code == domainerr.CodeDatabaseConnection
}
