package currency

import (
	"fmt"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// MutationValidator checks a mutation request before it is queued
type MutationValidator struct{}

// NewMutationValidator creates a new MutationValidator
func NewMutationValidator() *MutationValidator {
	return &MutationValidator{}
}

// Validate checks user, type, amount and metadata
func (v *MutationValidator) Validate(req usecase.MutationRequest) error {
	if req.UserID == 0 {
		return errs.ErrInvalidUserID
	}

	rule, ok := req.Type.Rule()
	if !ok {
		return fmt.Errorf("%w: %q", errs.ErrInvalidTransactionType, req.Type)
	}

	if err := v.validateAmount(req, rule); err != nil {
		return err
	}

	return entity.TransactionDetails{
		Description:    req.Description,
		ReferenceID:    req.ReferenceID,
		IdempotencyKey: req.IdempotencyKey,
		IPAddress:      req.IPAddress,
	}.Validate()
}

func (v *MutationValidator) validateAmount(req usecase.MutationRequest, rule entity.MutationRule) error {
	if err := entity.ValidateAmount(req.Amount); err != nil {
		return err
	}
	if req.Amount.IsZero() {
		return fmt.Errorf("%w: amount must not be zero", errs.ErrInvalidAmount)
	}
	if rule.Sign == entity.SignPositive && !req.Amount.IsPositive() {
		return fmt.Errorf("%w: %s requires a positive amount", errs.ErrInvalidAmount, req.Type)
	}
	if rule.Sign == entity.SignNegative && !req.Amount.IsNegative() {
		return fmt.Errorf("%w: %s requires a negative amount", errs.ErrInvalidAmount, req.Type)
	}
	return nil
}
