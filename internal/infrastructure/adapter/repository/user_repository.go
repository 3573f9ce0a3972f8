package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// UserRepository implements UserRepository interface using GORM
type UserRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewUserRepository creates a new UserRepository instance
func NewUserRepository(db *gorm.DB, logger coreport.Logger) *UserRepository {
	return &UserRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func userEntityToModel(user *entity.User) model.User {
	return model.User{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		PasswordHash:   user.PasswordHash,
		Phone:          user.Phone,
		IsActive:       user.IsActive,
		IsStaff:        user.IsStaff,
		IsSuspended:    user.IsSuspended,
		SuspendedUntil: utcPtr(user.SuspendedUntil),
		CreatedAt:      user.CreatedAt.UTC(),
		UpdatedAt:      user.UpdatedAt.UTC(),
	}
}

func userModelToEntity(userModel *model.User) *entity.User {
	return &entity.User{
		ID:             userModel.ID,
		Username:       userModel.Username,
		Email:          userModel.Email,
		PasswordHash:   userModel.PasswordHash,
		Phone:          userModel.Phone,
		IsActive:       userModel.IsActive,
		IsStaff:        userModel.IsStaff,
		IsSuspended:    userModel.IsSuspended,
		SuspendedUntil: userModel.SuspendedUntil,
		CreatedAt:      userModel.CreatedAt,
		UpdatedAt:      userModel.UpdatedAt,
	}
}

// handleDatabaseError standardizes database error handling
func (r *UserRepository) handleDatabaseError(operation string, err error, user *entity.User, userID uint64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Debug("User not found", map[string]any{
			"user_id": userID,
		})
		return errs.ErrUserNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		r.logger.Warn("Duplicate user operation", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		if user != nil {
			return errs.NewDuplicateUserError("username", user.Username)
		}
		return errs.ErrDuplicateUser
	}

	if r.errorClassifier.IsLockError(err) {
		r.logger.Warn("User is locked by another transaction", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return errs.ErrUserLocked
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	if id == 0 {
		return nil, errs.ErrInvalidUserID
	}

	var userModel model.User
	if err := r.db.WithContext(ctx).First(&userModel, id).Error; err != nil {
		return nil, r.handleDatabaseError("getting user", err, nil, id)
	}

	return userModelToEntity(&userModel), nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	var userModel model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&userModel).Error
	if err != nil {
		return nil, r.handleDatabaseError("getting user by username", err, nil, 0)
	}

	return userModelToEntity(&userModel), nil
}

// Create inserts a new user and assigns its ID
func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	userModel := userEntityToModel(user)
	userModel.ID = 0

	if err := r.db.WithContext(ctx).Create(&userModel).Error; err != nil {
		return r.handleDatabaseError("creating user", err, user, 0)
	}

	user.ID = userModel.ID
	r.logger.Info("User created successfully", map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return nil
}

// Update saves contact, status and suspension fields
func (r *UserRepository) Update(ctx context.Context, user *entity.User) error {
	result := r.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"email":           user.Email,
			"phone":           user.Phone,
			"is_active":       user.IsActive,
			"is_staff":        user.IsStaff,
			"is_suspended":    user.IsSuspended,
			"suspended_until": utcPtr(user.SuspendedUntil),
			"updated_at":      user.UpdatedAt.UTC(),
		})

	if result.Error != nil {
		return r.handleDatabaseError("updating user", result.Error, user, user.ID)
	}

	if result.RowsAffected == 0 {
		r.logger.Warn("User not found during update", map[string]any{
			"user_id": user.ID,
		})
		return errs.ErrUserNotFound
	}

	r.logger.Debug("User updated successfully", map[string]any{
		"user_id":      user.ID,
		"is_suspended": user.IsSuspended,
	})
	return nil
}

// ListExpiredSuspensions returns suspended users whose end time is at or before now
func (r *UserRepository) ListExpiredSuspensions(ctx context.Context, now time.Time, limit int) ([]*entity.User, error) {
	var userModels []model.User
	query := r.db.WithContext(ctx).
		Where("is_suspended = ? AND suspended_until IS NOT NULL AND suspended_until <= ?", true, now.UTC()).
		Order("suspended_until ASC, id ASC")

	if err := paginate(query, 0, limit).Find(&userModels).Error; err != nil {
		return nil, r.handleDatabaseError("listing expired suspensions", err, nil, 0)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModelToEntity(&userModels[i]))
	}
	return users, nil
}

// List returns one page of users, newest first, and the total match count
func (r *UserRepository) List(ctx context.Context, query persistence.UserQuery) ([]*entity.User, int64, error) {
	base := searchAny(r.db.WithContext(ctx).Model(&model.User{}), query.Search, "username", "email")
	if query.Suspended != nil {
		base = base.Where("is_suspended = ?", *query.Suspended)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting users", err, nil, 0)
	}

	var userModels []model.User
	err := paginate(base.Session(&gorm.Session{}), query.Offset, query.Limit).
		Order("id DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing users", err, nil, 0)
	}

	users := make([]*entity.User, 0, len(userModels))
	for i := range userModels {
		users = append(users, userModelToEntity(&userModels[i]))
	}
	return users, total, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
