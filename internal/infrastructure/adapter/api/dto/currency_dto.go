package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// ChargeSuccessMessage is returned with a successful charge
const ChargeSuccessMessage = "재화 충전 성공"

// CurrencyResponse is a user's ledger
type CurrencyResponse struct {
	ID            uint64    `json:"id"`
	User          uint64    `json:"user"`
	Username      string    `json:"username"`
	Balance       string    `json:"balance"`
	LockedBalance string    `json:"locked_balance"`
	TotalBalance  string    `json:"total_balance"`
	TotalEarned   string    `json:"total_earned"`
	TotalSpent    string    `json:"total_spent"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewCurrencyResponse renders a ledger with its owner's username
func NewCurrencyResponse(c *entity.Currency, username string) CurrencyResponse {
	return CurrencyResponse{
		ID:            c.ID,
		User:          c.UserID,
		Username:      username,
		Balance:       entity.FormatAmount(c.Balance),
		LockedBalance: entity.FormatAmount(c.LockedBalance),
		TotalBalance:  entity.FormatAmount(c.TotalBalance()),
		TotalEarned:   entity.FormatAmount(c.TotalEarned),
		TotalSpent:    entity.FormatAmount(c.TotalSpent),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// AdminCurrencyResponse adds the owner's email for staff listings
type AdminCurrencyResponse struct {
	CurrencyResponse
	Email string `json:"email"`
}

// TransactionResponse is one row of the ledger history
type TransactionResponse struct {
	ID                     uint64    `json:"id"`
	User                   uint64    `json:"user"`
	Username               string    `json:"username,omitempty"`
	Amount                 string    `json:"amount"`
	TransactionType        string    `json:"transaction_type"`
	TransactionTypeDisplay string    `json:"transaction_type_display"`
	BalanceBefore          string    `json:"balance_before"`
	BalanceAfter           string    `json:"balance_after"`
	LockedBalanceBefore    string    `json:"locked_balance_before"`
	LockedBalanceAfter     string    `json:"locked_balance_after"`
	Description            string    `json:"description"`
	ReferenceID            string    `json:"reference_id"`
	IsDebit                bool      `json:"is_debit"`
	IsCredit               bool      `json:"is_credit"`
	CreatedAt              time.Time `json:"created_at"`
}

// NewTransactionResponse renders a transaction row
func NewTransactionResponse(t *entity.CurrencyTransaction, username string) TransactionResponse {
	return TransactionResponse{
		ID:                     t.ID,
		User:                   t.UserID,
		Username:               username,
		Amount:                 entity.FormatAmount(t.Amount),
		TransactionType:        string(t.Type),
		TransactionTypeDisplay: t.TypeDisplay(),
		BalanceBefore:          entity.FormatAmount(t.BalanceBefore),
		BalanceAfter:           entity.FormatAmount(t.BalanceAfter),
		LockedBalanceBefore:    entity.FormatAmount(t.LockedBalanceBefore),
		LockedBalanceAfter:     entity.FormatAmount(t.LockedBalanceAfter),
		Description:            t.Description,
		ReferenceID:            t.ReferenceID,
		IsDebit:                t.IsDebit(),
		IsCredit:               t.IsCredit(),
		CreatedAt:              t.CreatedAt,
	}
}

// NewTransactionPageResponse renders a history page
func NewTransactionPageResponse(page *usecase.TransactionPage, username string) PageResponse[TransactionResponse] {
	results := make([]TransactionResponse, 0, len(page.Items))
	for _, item := range page.Items {
		results = append(results, NewTransactionResponse(item, username))
	}
	return NewPageResponse(results, page.Count, page.Page, page.PageSize)
}

// AmountInput accepts an amount as a JSON string or number and keeps its literal text
type AmountInput string

// UnmarshalJSON keeps the literal so no precision is lost to float64
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}

	var n json.Number
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	if err := decoder.Decode(&n); err != nil {
		return errors.New("amount must be a number or a numeric string")
	}
	*a = AmountInput(n.String())
	return nil
}

// ChargeRequest is the body of POST /api/currency/charge
type ChargeRequest struct {
	Amount      AmountInput `json:"amount" binding:"required,decimal_gt0"`
	Description string      `json:"description" binding:"omitempty,max=500"`
}

// ChargeResponse is returned after a successful charge
type ChargeResponse struct {
	Message     string              `json:"message"`
	Currency    CurrencyResponse    `json:"currency"`
	Transaction TransactionResponse `json:"transaction"`
}

// TransactionListQuery filters the caller's own history
type TransactionListQuery struct {
	PageQuery
	Type      string `form:"type" binding:"omitempty,txtype"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
}

// AdminTransactionListQuery filters the staff transaction listing
type AdminTransactionListQuery struct {
	TransactionListQuery
	UserID uint64 `form:"user_id"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// AdminCurrencyListQuery filters the staff ledger listing
type AdminCurrencyListQuery struct {
	PageQuery
	Search string `form:"search" binding:"omitempty,max=100"`
}
