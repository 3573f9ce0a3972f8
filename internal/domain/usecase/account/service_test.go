package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	errs "github.com/auctionhub/currency-service/internal/domain/error"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	mcore "github.com/auctionhub/currency-service/mocks/port/core"
	mpers "github.com/auctionhub/currency-service/mocks/port/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type txCtxKey struct{}

type fixture struct {
	ctx          context.Context
	txCtx        context.Context
	now          time.Time
	uow          *mpers.MockUnitOfWork
	userRepo     *mpers.MockUserRepository
	profileRepo  *mpers.MockProfileRepository
	currencyRepo *mpers.MockCurrencyRepository
	hasher       *mcore.MockPasswordHasher
	service      *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		ctx:          context.Background(),
		now:          time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		uow:          mpers.NewMockUnitOfWork(t),
		userRepo:     mpers.NewMockUserRepository(t),
		profileRepo:  mpers.NewMockProfileRepository(t),
		currencyRepo: mpers.NewMockCurrencyRepository(t),
		hasher:       mcore.NewMockPasswordHasher(t),
	}
	f.txCtx = context.WithValue(f.ctx, txCtxKey{}, "tx")

	timeProvider := mcore.NewMockTimeProvider(t)
	timeProvider.On("Now").Return(f.now).Maybe()
	logger := mcore.NewMockLogger(t).AllowAll()

	f.uow.On("GetUserRepository", mock.Anything).Return(f.userRepo).Maybe()
	f.uow.On("GetProfileRepository", mock.Anything).Return(f.profileRepo).Maybe()
	f.uow.On("GetCurrencyRepository", mock.Anything).Return(f.currencyRepo).Maybe()

	f.service = NewAccountService(f.uow, timeProvider, logger, f.hasher, usecase.MaxPageSize)
	return f
}

func (f *fixture) expectUnitOfWork(commit bool) {
	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	if commit {
		f.uow.On("Commit", f.txCtx).Return(nil).Once()
	} else {
		f.uow.On("Rollback", f.txCtx).Return(nil).Once()
	}
}

func TestRegister(t *testing.T) {
	validRequest := usecase.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "correct horse",
		Phone:    "010-0000-0000",
	}

	t.Run("should create user, profile and ledger in one unit of work", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.hasher.On("Hash", "correct horse").Return("$2a$hash", nil).Once()
		f.expectUnitOfWork(true)
		f.userRepo.On("Create", f.txCtx, mock.AnythingOfType("*entity.User")).
			Return(func(_ context.Context, u *entity.User) error {
				u.ID = 21
				return nil
			}).Once()
		f.profileRepo.On("Create", f.txCtx, mock.MatchedBy(func(p *entity.Profile) bool {
			return p.UserID == 21 && p.ReputationScore == 100 && p.Level == 1
		})).Return(nil).Once()
		ledger, _ := entity.NewCurrency(21, f.now)
		f.currencyRepo.On("GetByUserID", f.txCtx, uint64(21)).Return(ledger, nil).Once()

		var hookedUser uint64
		f.service.OnUserCreated(func(ctx context.Context, user *entity.User) error {
			assert.Equal(t, f.txCtx, ctx)
			hookedUser = user.ID
			return nil
		})

		// Act
		account, err := f.service.Register(f.ctx, validRequest)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, uint64(21), hookedUser)
		assert.Equal(t, "$2a$hash", account.User.PasswordHash)
		assert.False(t, account.User.IsStaff)
		assert.Equal(t, uint64(21), account.Profile.UserID)
		assert.Same(t, ledger, account.Currency)
	})

	t.Run("should roll back the registration when a hook fails", func(t *testing.T) {
		f := newFixture(t)
		f.hasher.On("Hash", mock.Anything).Return("$2a$hash", nil).Once()
		f.expectUnitOfWork(false)
		f.userRepo.On("Create", f.txCtx, mock.Anything).Return(nil).Once()
		f.profileRepo.On("Create", f.txCtx, mock.Anything).Return(nil).Once()
		hookErr := errors.New("ledger insert failed")
		f.service.OnUserCreated(func(ctx context.Context, user *entity.User) error { return hookErr })

		account, err := f.service.Register(f.ctx, validRequest)

		assert.Nil(t, account)
		assert.ErrorIs(t, err, hookErr)
		f.uow.AssertNotCalled(t, "Commit", mock.Anything)
	})

	t.Run("should surface duplicate usernames", func(t *testing.T) {
		f := newFixture(t)
		f.hasher.On("Hash", mock.Anything).Return("$2a$hash", nil).Once()
		f.expectUnitOfWork(false)
		f.userRepo.On("Create", f.txCtx, mock.Anything).Return(errs.NewDuplicateUserError("username", "alice")).Once()

		_, err := f.service.Register(f.ctx, validRequest)

		assert.ErrorIs(t, err, errs.ErrDuplicateUser)
	})

	t.Run("should validate before hashing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.service.Register(f.ctx, usecase.RegisterRequest{Username: "alice", Email: "a@b.co", Password: "short"})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)

		f.hasher.On("Hash", mock.Anything).Return("$2a$hash", nil).Once()
		_, err = f.service.Register(f.ctx, usecase.RegisterRequest{Username: "a", Email: "a@b.co", Password: "long enough"})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)

		f.uow.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestEnsureAdmin(t *testing.T) {
	t.Run("should skip an existing admin", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.On("GetByUsername", f.ctx, "root").Return(&entity.User{ID: 1, IsStaff: true}, nil).Once()

		assert.NoError(t, f.service.EnsureAdmin(f.ctx, "root", "root@example.com", "change-me-now"))
	})

	t.Run("should create a staff account", func(t *testing.T) {
		f := newFixture(t)
		f.userRepo.On("GetByUsername", f.ctx, "root").Return(nil, errs.ErrUserNotFound).Once()
		f.hasher.On("Hash", "change-me-now").Return("$2a$hash", nil).Once()
		f.expectUnitOfWork(true)
		f.userRepo.On("Create", f.txCtx, mock.MatchedBy(func(u *entity.User) bool { return u.IsStaff })).Return(nil).Once()
		f.profileRepo.On("Create", f.txCtx, mock.Anything).Return(nil).Once()
		f.currencyRepo.On("GetByUserID", f.txCtx, mock.Anything).Return(nil, errs.ErrCurrencyNotFound).Once()

		assert.NoError(t, f.service.EnsureAdmin(f.ctx, "root", "root@example.com", "change-me-now"))
	})
}

func TestUpdateContact(t *testing.T) {
	t.Run("should save the user and run saved hooks", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		user := &entity.User{ID: 5, Email: "old@example.com"}
		f.expectUnitOfWork(true)
		f.userRepo.On("GetByID", f.txCtx, uint64(5)).Return(user, nil).Once()
		f.userRepo.On("Update", f.txCtx, user).Return(nil).Once()
		hookRuns := 0
		f.service.OnUserSaved(func(ctx context.Context, u *entity.User) error {
			hookRuns++
			return nil
		})
		phone := "010-9999-0000"

		// Act
		saved, err := f.service.UpdateContact(f.ctx, usecase.UpdateContactRequest{UserID: 5, Phone: &phone})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, phone, saved.Phone)
		assert.Equal(t, "old@example.com", saved.Email)
		assert.Equal(t, 1, hookRuns)
		assert.Equal(t, f.now, saved.UpdatedAt)
	})

	t.Run("should reject an empty update", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.service.UpdateContact(f.ctx, usecase.UpdateContactRequest{UserID: 5})
		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
	})

	t.Run("should roll back on an invalid email", func(t *testing.T) {
		f := newFixture(t)
		f.expectUnitOfWork(false)
		f.userRepo.On("GetByID", f.txCtx, uint64(5)).Return(&entity.User{ID: 5}, nil).Once()
		bad := "nope"

		_, err := f.service.UpdateContact(f.ctx, usecase.UpdateContactRequest{UserID: 5, Email: &bad})

		assert.ErrorIs(t, err, errs.ErrInvalidRequest)
		f.userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestGetAccount(t *testing.T) {
	f := newFixture(t)
	f.userRepo.On("GetByID", f.ctx, uint64(5)).Return(&entity.User{ID: 5}, nil).Once()
	f.profileRepo.On("GetByUserID", f.ctx, uint64(5)).Return(entity.NewProfile(5, f.now), nil).Once()

	account, err := f.service.GetAccount(f.ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, uint64(5), account.Profile.UserID)
	assert.Nil(t, account.Currency)

	_, err = f.service.GetAccount(f.ctx, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidUserID)
}

func TestSuspension(t *testing.T) {
	t.Run("should suspend until a future time", func(t *testing.T) {
		f := newFixture(t)
		user := &entity.User{ID: 5}
		until := f.now.Add(48 * time.Hour)
		f.expectUnitOfWork(true)
		f.userRepo.On("GetByID", f.txCtx, uint64(5)).Return(user, nil).Once()
		f.userRepo.On("Update", f.txCtx, user).Return(nil).Once()

		saved, err := f.service.Suspend(f.ctx, 5, &until)

		require.NoError(t, err)
		assert.True(t, saved.IsSuspendedAt(f.now))
	})

	t.Run("should unsuspend", func(t *testing.T) {
		f := newFixture(t)
		user := &entity.User{ID: 5, IsSuspended: true}
		f.expectUnitOfWork(true)
		f.userRepo.On("GetByID", f.txCtx, uint64(5)).Return(user, nil).Once()
		f.userRepo.On("Update", f.txCtx, user).Return(nil).Once()

		saved, err := f.service.Unsuspend(f.ctx, 5)

		require.NoError(t, err)
		assert.False(t, saved.IsSuspended)
	})

	t.Run("should lift expired suspensions in batches", func(t *testing.T) {
		// Arrange
		f := newFixture(t)
		f.service.sweepBatchSize = 2
		past := f.now.Add(-time.Minute)
		first := []*entity.User{
			{ID: 1, IsSuspended: true, SuspendedUntil: &past},
			{ID: 2, IsSuspended: true, SuspendedUntil: &past},
		}
		second := []*entity.User{{ID: 3, IsSuspended: true, SuspendedUntil: &past}}

		f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Twice()
		f.uow.On("Commit", f.txCtx).Return(nil).Twice()
		f.userRepo.On("ListExpiredSuspensions", f.txCtx, f.now, 2).Return(first, nil).Once()
		f.userRepo.On("ListExpiredSuspensions", f.txCtx, f.now, 2).Return(second, nil).Once()
		f.userRepo.On("Update", f.txCtx, mock.Anything).Return(nil).Times(3)

		// Act
		lifted, err := f.service.LiftExpiredSuspensions(f.ctx)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 3, lifted)
		for _, u := range append(first, second...) {
			assert.False(t, u.IsSuspended)
			assert.Nil(t, u.SuspendedUntil)
		}
	})
}

func TestAdminListings(t *testing.T) {
	f := newFixture(t)
	suspended := true
	level := 2
	f.userRepo.On("List", f.ctx, persistence.UserQuery{Search: "bob", Suspended: &suspended, Offset: 20, Limit: 20}).
		Return([]*entity.User{{ID: 9}}, int64(21), nil).Once()
	f.profileRepo.On("List", f.ctx, persistence.ProfileQuery{Level: &level, Offset: 0, Limit: 5}).
		Return([]persistence.ProfileView{{Profile: entity.NewProfile(9, f.now), Username: "bob"}}, int64(1), nil).Once()

	users, err := f.service.AdminListUsers(f.ctx, usecase.AdminUserFilter{Search: "bob", Suspended: &suspended, Page: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(21), users.Count)
	assert.Equal(t, 2, users.Page)

	profiles, err := f.service.AdminListProfiles(f.ctx, usecase.AdminProfileFilter{Level: &level, PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, "bob", profiles.Items[0].Username)
}
