package usecase

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockAccountUseCase is a mock type for the AccountUseCase type
type MockAccountUseCase struct {
	mock.Mock
}

// Register provides a mock function with given fields: ctx, req
func (_m *MockAccountUseCase) Register(ctx context.Context, req usecase.RegisterRequest) (*usecase.Account, error) {
	ret := _m.Called(ctx, req)
	var r0 *usecase.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.Account)
	}
	return r0, ret.Error(1)
}

// GetAccount provides a mock function with given fields: ctx, userID
func (_m *MockAccountUseCase) GetAccount(ctx context.Context, userID uint64) (*usecase.Account, error) {
	ret := _m.Called(ctx, userID)
	var r0 *usecase.Account
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.Account)
	}
	return r0, ret.Error(1)
}

// UpdateContact provides a mock function with given fields: ctx, req
func (_m *MockAccountUseCase) UpdateContact(ctx context.Context, req usecase.UpdateContactRequest) (*entity.User, error) {
	ret := _m.Called(ctx, req)
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

// Suspend provides a mock function with given fields: ctx, userID, until
func (_m *MockAccountUseCase) Suspend(ctx context.Context, userID uint64, until *time.Time) (*entity.User, error) {
	ret := _m.Called(ctx, userID, until)
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

// Unsuspend provides a mock function with given fields: ctx, userID
func (_m *MockAccountUseCase) Unsuspend(ctx context.Context, userID uint64) (*entity.User, error) {
	ret := _m.Called(ctx, userID)
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

// LiftExpiredSuspensions provides a mock function with given fields: ctx
func (_m *MockAccountUseCase) LiftExpiredSuspensions(ctx context.Context) (int, error) {
	ret := _m.Called(ctx)
	return ret.Int(0), ret.Error(1)
}

// AdminListUsers provides a mock function with given fields: ctx, filter
func (_m *MockAccountUseCase) AdminListUsers(ctx context.Context, filter usecase.AdminUserFilter) (*usecase.UserPage, error) {
	ret := _m.Called(ctx, filter)
	var r0 *usecase.UserPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.UserPage)
	}
	return r0, ret.Error(1)
}

// AdminListProfiles provides a mock function with given fields: ctx, filter
func (_m *MockAccountUseCase) AdminListProfiles(ctx context.Context, filter usecase.AdminProfileFilter) (*usecase.ProfilePage, error) {
	ret := _m.Called(ctx, filter)
	var r0 *usecase.ProfilePage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.ProfilePage)
	}
	return r0, ret.Error(1)
}

// NewMockAccountUseCase creates a new instance of MockAccountUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAccountUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountUseCase {
	m := &MockAccountUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
