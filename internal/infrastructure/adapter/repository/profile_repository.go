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

// ProfileRepository implements ProfileRepository interface using GORM
type ProfileRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewProfileRepository creates a new ProfileRepository instance
func NewProfileRepository(db *gorm.DB, logger coreport.Logger) *ProfileRepository {
	return &ProfileRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func profileModelToEntity(m *model.Profile) *entity.Profile {
	return &entity.Profile{
		ID:                   m.ID,
		UserID:               m.UserID,
		ReputationScore:      m.ReputationScore,
		Level:                m.Level,
		TotalAuctionsCreated: m.TotalAuctionsCreated,
		TotalBidsMade:        m.TotalBidsMade,
		TotalWins:            m.TotalWins,
		TotalSales:           m.TotalSales,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func (r *ProfileRepository) handleDatabaseError(operation string, err error, userID uint64) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errs.ErrNotFound
	case r.errorClassifier.IsDuplicateKeyError(err):
		r.logger.Warn("Profile already exists", map[string]any{"user_id": userID})
		return fmt.Errorf("%w: profile for user %d already exists", errs.ErrDuplicateUser, userID)
	case r.errorClassifier.IsForeignKeyError(err):
		return errs.ErrUserNotFound
	}

	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"user_id": userID,
		"error":   err.Error(),
	})
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// Create inserts the profile for a user
func (r *ProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	profileModel := model.Profile{
		UserID:               profile.UserID,
		ReputationScore:      profile.ReputationScore,
		Level:                profile.Level,
		TotalAuctionsCreated: profile.TotalAuctionsCreated,
		TotalBidsMade:        profile.TotalBidsMade,
		TotalWins:            profile.TotalWins,
		TotalSales:           profile.TotalSales,
		CreatedAt:            profile.CreatedAt.UTC(),
		UpdatedAt:            profile.UpdatedAt.UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&profileModel).Error; err != nil {
		return r.handleDatabaseError("creating profile", err, profile.UserID)
	}

	profile.ID = profileModel.ID
	return nil
}

// GetByUserID retrieves a user's profile
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Profile, error) {
	var profileModel model.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profileModel).Error; err != nil {
		return nil, r.handleDatabaseError("getting profile", err, userID)
	}
	return profileModelToEntity(&profileModel), nil
}

type profileRow struct {
	model.Profile
	Username string
}

// List returns one page of profiles with owner usernames and the total match count
func (r *ProfileRepository) List(ctx context.Context, query persistence.ProfileQuery) ([]persistence.ProfileView, int64, error) {
	base := r.db.WithContext(ctx).
		Table("profiles").
		Joins("JOIN users ON users.id = profiles.user_id")
	base = searchAny(base, query.Search, "users.username", "users.email")
	if query.Level != nil {
		base = base.Where("profiles.level = ?", *query.Level)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, r.handleDatabaseError("counting profiles", err, 0)
	}

	var rows []profileRow
	err := paginate(base.Session(&gorm.Session{}), query.Offset, query.Limit).
		Select("profiles.*, users.username AS username").
		Order("profiles.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, 0, r.handleDatabaseError("listing profiles", err, 0)
	}

	views := make([]persistence.ProfileView, 0, len(rows))
	for i := range rows {
		views = append(views, persistence.ProfileView{
			Profile:  profileModelToEntity(&rows[i].Profile),
			Username: rows[i].Username,
		})
	}
	return views, total, nil
}
