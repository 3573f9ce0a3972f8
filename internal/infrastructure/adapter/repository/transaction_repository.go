package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// TransactionRepository implements TransactionRepository interface using GORM.
// It only ever inserts and reads; the model hooks refuse updates and deletes.
type TransactionRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewTransactionRepository creates a new TransactionRepository instance
func NewTransactionRepository(db *gorm.DB, logger coreport.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

// entityToModel converts a transaction entity to a database model
func (r *TransactionRepository) entityToModel(tx *entity.CurrencyTransaction) model.CurrencyTransaction {
	return model.CurrencyTransaction{
		UserID:              tx.UserID,
		Amount:              entity.NormalizeAmount(tx.Amount),
		TransactionType:     string(tx.Type),
		BalanceBefore:       entity.NormalizeAmount(tx.BalanceBefore),
		BalanceAfter:        entity.NormalizeAmount(tx.BalanceAfter),
		LockedBalanceBefore: entity.NormalizeAmount(tx.LockedBalanceBefore),
		LockedBalanceAfter:  entity.NormalizeAmount(tx.LockedBalanceAfter),
		Description:         tx.Description,
		ReferenceID:         tx.ReferenceID,
		IdempotencyKey:      nullableString(tx.IdempotencyKey),
		IPAddress:           nullableString(tx.IPAddress),
		CreatedAt:           tx.CreatedAt.UTC(),
	}
}

// modelToEntity converts a transaction model to an entity
func (r *TransactionRepository) modelToEntity(m *model.CurrencyTransaction) *entity.CurrencyTransaction {
	return &entity.CurrencyTransaction{
		ID:                  m.ID,
		UserID:              m.UserID,
		Amount:              entity.NormalizeAmount(m.Amount),
		Type:                entity.TransactionType(m.TransactionType),
		BalanceBefore:       entity.NormalizeAmount(m.BalanceBefore),
		BalanceAfter:        entity.NormalizeAmount(m.BalanceAfter),
		LockedBalanceBefore: entity.NormalizeAmount(m.LockedBalanceBefore),
		LockedBalanceAfter:  entity.NormalizeAmount(m.LockedBalanceAfter),
		Description:         m.Description,
		ReferenceID:         m.ReferenceID,
		IdempotencyKey:      derefString(m.IdempotencyKey),
		IPAddress:           derefString(m.IPAddress),
		CreatedAt:           m.CreatedAt,
	}
}

func (r *TransactionRepository) handleDatabaseError(operation string, err error, fields map[string]any) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrTransactionNotFound
	case errors.Is(err, errs.ErrImmutableTransaction):
		return err
	case r.errorClassifier.IsDuplicateKeyError(err):
		r.logger.Warn("Duplicate transaction detected", fields)
		return errs.ErrDuplicateTransaction
	case r.errorClassifier.IsForeignKeyError(err):
		return errs.ErrUserNotFound
	}

	logFields := map[string]any{"error": err.Error()}
	for k, v := range fields {
		logFields[k] = v
	}
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), logFields)
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create appends a new transaction row and assigns its ID
func (r *TransactionRepository) Create(ctx context.Context, tx *entity.CurrencyTransaction) error {
	txModel := r.entityToModel(tx)

	if err := r.db.WithContext(ctx).Create(&txModel).Error; err != nil {
		return r.handleDatabaseError("creating transaction", err, map[string]any{
			"user_id":         tx.UserID,
			"type":            string(tx.Type),
			"idempotency_key": tx.IdempotencyKey,
		})
	}

	tx.ID = txModel.ID
	r.logger.Debug("Transaction recorded", map[string]any{
		"transaction_id": tx.ID,
		"user_id":        tx.UserID,
		"type":           string(tx.Type),
		"amount":         entity.FormatAmount(tx.Amount),
	})
	return nil
}

// GetByID retrieves a transaction row
func (r *TransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.CurrencyTransaction, error) {
	var txModel model.CurrencyTransaction
	if err := r.db.WithContext(ctx).First(&txModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting transaction", err, map[string]any{"transaction_id": id})
	}
	return r.modelToEntity(&txModel), nil
}

// GetByIdempotencyKey finds the row previously written for a client key
func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, userID uint64, key string) (*entity.CurrencyTransaction, error) {
	if key == "" {
		return nil, errs.ErrTransactionNotFound
	}

	var txModel model.CurrencyTransaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND idempotency_key = ?", userID, key).
		First(&txModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting transaction by idempotency key", err, map[string]any{
			"user_id":         userID,
			"idempotency_key": key,
		})
	}
	return r.modelToEntity(&txModel), nil
}

// List returns one page of rows ordered by created_at desc, id desc, and the total match count
func (r *TransactionRepository) List(ctx context.Context, query persistence.TransactionQuery) ([]*entity.CurrencyTransaction, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.CurrencyTransaction{})

	if query.UserID != 0 {
		base = base.Where("currency_transactions.user_id = ?", query.UserID)
	}
	if query.Type != "" {
		base = base.Where("currency_transactions.transaction_type = ?", string(query.Type))
	}
	if query.From != nil {
		base = base.Where("currency_transactions.created_at >= ?", query.From.UTC())
	}
	if query.To != nil {
		base = base.Where("currency_transactions.created_at < ?", query.To.UTC())
	}
	if query.Search != "" {
		base = base.Joins("JOIN users ON users.id = currency_transactions.user_id")
		base = searchAny(base, query.Search,
			"currency_transactions.description",
			"currency_transactions.reference_id",
			"users.username",
			"users.email",
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting transactions", err, nil)
	}

	var txModels []model.CurrencyTransaction
	err := paginate(base.Session(&gorm.Session{}), query.Offset, query.Limit).
		Select("currency_transactions.*").
		Order("currency_transactions.created_at DESC, currency_transactions.id DESC").
		Find(&txModels).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing transactions", err, nil)
	}

	transactions := make([]*entity.CurrencyTransaction, 0, len(txModels))
	for i := range txModels {
		transactions = append(transactions, r.modelToEntity(&txModels[i]))
	}
	return transactions, total, nil
}
