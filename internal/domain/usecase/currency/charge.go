package currency

import (
	"context"
	"fmt"
	"strings"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// Charge credits a manual top-up. The amount must be positive and at least the configured minimum.
func (s *Service) Charge(ctx context.Context, req usecase.ChargeRequest) (*usecase.MutationResult, error) {
	amount, err := entity.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: charge amount must be greater than zero", errs.ErrInvalidAmount)
	}
	if amount.LessThan(s.config.MinChargeAmount) {
		return nil, fmt.Errorf("%w: charge amount must be at least %s",
			errs.ErrInvalidAmount, entity.FormatAmount(s.config.MinChargeAmount))
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if user.IsSuspendedAt(s.timeProvider.Now()) {
		s.logger.Warn("Suspended user attempted a charge", map[string]any{"user_id": user.ID})
		return nil, errs.ErrUserSuspended
	}

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = DefaultChargeDescription
	}

	return s.ApplyMutation(ctx, usecase.MutationRequest{
		UserID:         req.UserID,
		Type:           entity.TypeCharge,
		Amount:         amount,
		Description:    description,
		IdempotencyKey: strings.TrimSpace(req.IdempotencyKey),
		IPAddress:      req.IPAddress,
	})
}
