package account

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
)

// Register creates the user, its profile and every hooked record atomically
func (s *Service) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.Account, error) {
	return s.register(ctx, req, false)
}

// EnsureAdmin creates a staff account with the given credentials unless the username is taken
func (s *Service) EnsureAdmin(ctx context.Context, username, email, password string) error {
	_, err := s.uow.GetUserRepository(ctx).GetByUsername(ctx, username)
	if err == nil {
		s.logger.Info("Admin account already exists", map[string]any{"username": username})
		return nil
	}
	if !errors.Is(err, errs.ErrUserNotFound) {
		return err
	}

	account, err := s.register(ctx, usecase.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	}, true)
	if err != nil {
		return err
	}

	s.logger.Info("Admin account created", map[string]any{
		"user_id":  account.User.ID,
		"username": username,
	})
	return nil
}

func (s *Service) register(ctx context.Context, req usecase.RegisterRequest, staff bool) (*usecase.Account, error) {
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", map[string]any{"error": err.Error()})
		return nil, errs.ErrInternalServer
	}

	user, err := entity.NewUser(req.Username, req.Email, hash, req.Phone, s.timeProvider)
	if err != nil {
		return nil, err
	}
	user.IsStaff = staff

	account := &usecase.Account{User: user}
	err = s.inTransaction(ctx, "register", func(txCtx context.Context) error {
		if err := s.uow.GetUserRepository(txCtx).Create(txCtx, user); err != nil {
			return err
		}

		profile := entity.NewProfile(user.ID, user.CreatedAt)
		if err := s.uow.GetProfileRepository(txCtx).Create(txCtx, profile); err != nil {
			return err
		}
		account.Profile = profile

		for _, hook := range s.createdHooks {
			if err := hook(txCtx, user); err != nil {
				s.logger.Error("User created hook failed", map[string]any{
					"user_id": user.ID,
					"error":   err.Error(),
				})
				return err
			}
		}

		ledger, err := s.uow.GetCurrencyRepository(txCtx).GetByUserID(txCtx, user.ID)
		switch {
		case err == nil:
			account.Currency = ledger
		case !errors.Is(err, errs.ErrCurrencyNotFound):
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("Registration failed", map[string]any{
			"username": user.Username,
			"error":    err.Error(),
		})
		return nil, err
	}

	s.logger.Info("User registered", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return account, nil
}

func validatePassword(password string) error {
	n := utf8.RuneCountInString(password)
	if n < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", errs.ErrInvalidRequest, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", errs.ErrInvalidRequest, MaxPasswordLength)
	}
	return nil
}
