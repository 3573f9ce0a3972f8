package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CurrencyRepository implements CurrencyRepository interface using GORM
type CurrencyRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewCurrencyRepository creates a new CurrencyRepository instance
func NewCurrencyRepository(db *gorm.DB, logger coreport.Logger) *CurrencyRepository {
	return &CurrencyRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func currencyModelToEntity(m *model.Currency) *entity.Currency {
	return &entity.Currency{
		ID:            m.ID,
		UserID:        m.UserID,
		Balance:       entity.NormalizeAmount(m.Balance),
		LockedBalance: entity.NormalizeAmount(m.LockedBalance),
		TotalEarned:   entity.NormalizeAmount(m.TotalEarned),
		TotalSpent:    entity.NormalizeAmount(m.TotalSpent),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func (r *CurrencyRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrCurrencyNotFound
	case r.errorClassifier.IsForeignKeyError(err):
		r.logger.Warn("Ledger owner does not exist", map[string]any{"user_id": userID})
		return errs.ErrUserNotFound
	case r.errorClassifier.IsLockError(err):
		r.logger.Warn("Ledger is locked by another transaction", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return errs.ErrUserLocked
	case r.errorClassifier.IsConstraintError(err):
		r.logger.Error("Ledger constraint violated", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByUserID retrieves the ledger of a user
func (r *CurrencyRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Currency, error) {
	var currencyModel model.Currency
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&currencyModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting ledger", err, userID)
	}
	return currencyModelToEntity(&currencyModel), nil
}

// GetOrCreate returns the user's ledger, creating an empty one when missing
func (r *CurrencyRepository) GetOrCreate(ctx context.Context, userID uint64, now time.Time) (*entity.Currency, bool, error) {
	return r.getOrCreate(ctx, userID, now, false)
}

// GetOrCreateForUpdate behaves like GetOrCreate and locks the row until the transaction ends
func (r *CurrencyRepository) GetOrCreateForUpdate(ctx context.Context, userID uint64, now time.Time) (*entity.Currency, bool, error) {
	return r.getOrCreate(ctx, userID, now, true)
}

// getOrCreate inserts with ON CONFLICT DO NOTHING so concurrent first accesses
// converge on the row guarded by the unique user_id index, then reads it back
func (r *CurrencyRepository) getOrCreate(ctx context.Context, userID uint64, now time.Time, lock bool) (*entity.Currency, bool, error) {
	if userID == 0 {
		return nil, false, errs.ErrInvalidUserID
	}

	db := r.db.WithContext(ctx)
	now = now.UTC()

	candidate := model.Currency{
		UserID:        userID,
		Balance:       decimal.Zero,
		LockedBalance: decimal.Zero,
		TotalEarned:   decimal.Zero,
		TotalSpent:    decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&candidate)
	if result.Error != nil {
		return nil, false, r.handleDatabaseError("creating ledger", result.Error, userID)
	}
	created := result.RowsAffected == 1

	query := db.Where("user_id = ?", userID)
	if lock {
		query = forUpdate(query)
	}

	var currencyModel model.Currency
	if err := query.First(&currencyModel).Error; err != nil {
		return nil, false, r.handleDatabaseError("loading ledger", err, userID)
	}

	if created {
		r.logger.Info("Ledger created", map[string]any{
			"user_id":     userID,
			"currency_id": currencyModel.ID,
		})
	}

	return currencyModelToEntity(&currencyModel), created, nil
}

// Update writes balances, accumulators and updated_at
func (r *CurrencyRepository) Update(ctx context.Context, currency *entity.Currency) error {
	result := r.db.WithContext(ctx).Model(&model.Currency{}).
		Where("user_id = ?", currency.UserID).
		Updates(map[string]interface{}{
			"balance":        entity.NormalizeAmount(currency.Balance),
			"locked_balance": entity.NormalizeAmount(currency.LockedBalance),
			"total_earned":   entity.NormalizeAmount(currency.TotalEarned),
			"total_spent":    entity.NormalizeAmount(currency.TotalSpent),
			"updated_at":     currency.UpdatedAt.UTC(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating ledger", result.Error, currency.UserID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("Ledger not found during update", map[string]any{
			"user_id": currency.UserID,
		})
		return errs.ErrCurrencyNotFound
	}

	r.logger.Debug("Ledger updated", map[string]any{
		"user_id":        currency.UserID,
		"balance":        entity.FormatAmount(currency.Balance),
		"locked_balance": entity.FormatAmount(currency.LockedBalance),
	})
	return nil
}

// Touch writes only updated_at
func (r *CurrencyRepository) Touch(ctx context.Context, userID uint64, now time.Time) error {
	result := r.db.WithContext(ctx).Model(&model.Currency{}).
		Where("user_id = ?", userID).
		UpdateColumn("updated_at", now.UTC())

	if result.Error != nil {
		return r.handleDatabaseError("touching ledger", result.Error, userID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrCurrencyNotFound
	}
	return nil
}

type currencyRow struct {
	model.Currency
	Username string
	Email    string
}

// List returns one page of ledgers with owner identity and the total match count
func (r *CurrencyRepository) List(ctx context.Context, query persistence.CurrencyQuery) ([]persistence.CurrencyView, int64, error) {
	base := r.db.WithContext(ctx).
		Table("currencies").
		Joins("JOIN users ON users.id = currencies.user_id")
	base = searchAny(base, query.Search, "users.username", "users.email")

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting ledgers", err, 0)
	}

	var rows []currencyRow
	err := paginate(base.Session(&gorm.Session{}), query.Offset, query.Limit).
		Select("currencies.*, users.username AS username, users.email AS email").
		Order("currencies.updated_at DESC, currencies.id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing ledgers", err, 0)
	}

	views := make([]persistence.CurrencyView, 0, len(rows))
	for i := range rows {
		views = append(views, persistence.CurrencyView{
			Currency: currencyModelToEntity(&rows[i].Currency),
			Username: rows[i].Username,
			Email:    rows[i].Email,
		})
	}
	return views, total, nil
}
