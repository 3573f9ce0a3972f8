package persistence

import (
	"context"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockProfileRepository is a mock type for the ProfileRepository type
type MockProfileRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, profile
func (_m *MockProfileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	ret := _m.Called(ctx, profile)
	return ret.Error(0)
}

// GetByUserID provides a mock function with given fields: ctx, userID
func (_m *MockProfileRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Profile, error) {
	ret := _m.Called(ctx, userID)
	var r0 *entity.Profile
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Profile)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, query
func (_m *MockProfileRepository) List(ctx context.Context, query persistence.ProfileQuery) ([]persistence.ProfileView, int64, error) {
	ret := _m.Called(ctx, query)
	var r0 []persistence.ProfileView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]persistence.ProfileView)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

// NewMockProfileRepository creates a new instance of MockProfileRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockProfileRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockProfileRepository {
	m := &MockProfileRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
