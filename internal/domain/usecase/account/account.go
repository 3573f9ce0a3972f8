package account

import (
	"context"
	"errors"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// GetAccount returns the user with its profile
func (s *Service) GetAccount(ctx context.Context, userID uint64) (*usecase.Account, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	user, err := s.uow.GetUserRepository(ctx).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.uow.GetProfileRepository(ctx).GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	return &usecase.Account{User: user, Profile: profile}, nil
}

// UpdateContact changes email and phone, then runs the saved hooks in the same unit of work
func (s *Service) UpdateContact(ctx context.Context, req usecase.UpdateContactRequest) (*entity.User, error) {
	if req.Email == nil && req.Phone == nil {
		return nil, errs.ErrInvalidRequest
	}

	return s.saveUser(ctx, "update_contact", req.UserID, func(user *entity.User) error {
		return user.UpdateContact(req.Email, req.Phone, s.timeProvider.Now())
	})
}

// saveUser loads a user, applies change and persists it together with the saved hooks
func (s *Service) saveUser(ctx context.Context, operation string, userID uint64, change func(*entity.User) error) (*entity.User, error) {
	if userID == 0 {
		return nil, errs.ErrInvalidUserID
	}

	var saved *entity.User
	err := s.inTransaction(ctx, operation, func(txCtx context.Context) error {
		repo := s.uow.GetUserRepository(txCtx)
		user, err := repo.GetByID(txCtx, userID)
		if err != nil {
			return err
		}
		if err := change(user); err != nil {
			return err
		}
		if err := repo.Update(txCtx, user); err != nil {
			return err
		}
		if err := s.runSavedHooks(txCtx, user); err != nil {
			return err
		}
		saved = user
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("User saved", map[string]any{
		"user_id":   userID,
		"operation": operation,
	})
	return saved, nil
}

func (s *Service) runSavedHooks(ctx context.Context, user *entity.User) error {
	for _, hook := range s.savedHooks {
		if err := hook(ctx, user); err != nil {
			s.logger.Error("User saved hook failed", map[string]any{
				"user_id": user.ID,
				"error":   err.Error(),
			})
			return err
		}
	}
	return nil
}
