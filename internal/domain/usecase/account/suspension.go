package account

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
)

// Suspend suspends a user until the given time, or indefinitely when until is nil
func (s *Service) Suspend(ctx context.Context, userID uint64, until *time.Time) (*entity.User, error) {
	return s.saveUser(ctx, "suspend", userID, func(user *entity.User) error {
		return user.Suspend(until, s.timeProvider.Now())
	})
}

// Unsuspend lifts a user's suspension
func (s *Service) Unsuspend(ctx context.Context, userID uint64) (*entity.User, error) {
	return s.saveUser(ctx, "unsuspend", userID, func(user *entity.User) error {
		user.LiftSuspension(s.timeProvider.Now())
		return nil
	})
}

// LiftExpiredSuspensions clears every suspension whose end time has passed, one batch per unit of work
func (s *Service) LiftExpiredSuspensions(ctx context.Context) (int, error) {
	now := s.timeProvider.Now()
	lifted := 0

	for {
		if err := ctx.Err(); err != nil {
			return lifted, err
		}

		batch := 0
		err := s.inTransaction(ctx, "lift_expired_suspensions", func(txCtx context.Context) error {
			repo := s.uow.GetUserRepository(txCtx)
			users, err := repo.ListExpiredSuspensions(txCtx, now, s.sweepBatchSize)
			if err != nil {
				return err
			}
			for _, user := range users {
				user.LiftSuspension(now)
				if err := repo.Update(txCtx, user); err != nil {
					return err
				}
				if err := s.runSavedHooks(txCtx, user); err != nil {
					return err
				}
			}
			batch = len(users)
			return nil
		})
		if err != nil {
			return lifted, err
		}

		lifted += batch
		if batch < s.sweepBatchSize {
			break
		}
	}

	if lifted > 0 {
		s.logger.Info("Lifted expired suspensions", map[string]any{"count": lifted})
	}
	return lifted, nil
}
