package persistence

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock type for the UserRepository type
type MockUserRepository struct {
	mock.Mock
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockUserRepository) GetByID(ctx context.Context, id uint64) (*entity.User, error) {
	ret := _m.Called(ctx, id)
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

// GetByUsername provides a mock function with given fields: ctx, username
func (_m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	ret := _m.Called(ctx, username)
	var r0 *entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.User)
	}
	return r0, ret.Error(1)
}

// Create provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	if rf, ok := ret.Get(0).(func(context.Context, *entity.User) error); ok {
		return rf(ctx, user)
	}
	return ret.Error(0)
}

// Update provides a mock function with given fields: ctx, user
func (_m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// ListExpiredSuspensions provides a mock function with given fields: ctx, now, limit
func (_m *MockUserRepository) ListExpiredSuspensions(ctx context.Context, now time.Time, limit int) ([]*entity.User, error) {
	ret := _m.Called(ctx, now, limit)
	var r0 []*entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.User)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, query
func (_m *MockUserRepository) List(ctx context.Context, query persistence.UserQuery) ([]*entity.User, int64, error) {
	ret := _m.Called(ctx, query)
	var r0 []*entity.User
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.User)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

// NewMockUserRepository creates a new instance of MockUserRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockUserRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockUserRepository {
	m := &MockUserRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
