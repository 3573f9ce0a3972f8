package persistence

import (
	"context"
	"time"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockCurrencyRepository is a mock type for the CurrencyRepository type
type MockCurrencyRepository struct {
	mock.Mock
}

// GetByUserID provides a mock function with given fields: ctx, userID
func (_m *MockCurrencyRepository) GetByUserID(ctx context.Context, userID uint64) (*entity.Currency, error) {
	ret := _m.Called(ctx, userID)
	var r0 *entity.Currency
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Currency)
	}
	return r0, ret.Error(1)
}

// GetOrCreate provides a mock function with given fields: ctx, userID, now
func (_m *MockCurrencyRepository) GetOrCreate(ctx context.Context, userID uint64, now time.Time) (*entity.Currency, bool, error) {
	ret := _m.Called(ctx, userID, now)
	var r0 *entity.Currency
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Currency)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

// GetOrCreateForUpdate provides a mock function with given fields: ctx, userID, now
func (_m *MockCurrencyRepository) GetOrCreateForUpdate(ctx context.Context, userID uint64, now time.Time) (*entity.Currency, bool, error) {
	ret := _m.Called(ctx, userID, now)
	var r0 *entity.Currency
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Currency)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

// Update provides a mock function with given fields: ctx, currency
func (_m *MockCurrencyRepository) Update(ctx context.Context, currency *entity.Currency) error {
	ret := _m.Called(ctx, currency)
	return ret.Error(0)
}

// Touch provides a mock function with given fields: ctx, userID, now
func (_m *MockCurrencyRepository) Touch(ctx context.Context, userID uint64, now time.Time) error {
	ret := _m.Called(ctx, userID, now)
	return ret.Error(0)
}

// List provides a mock function with given fields: ctx, query
func (_m *MockCurrencyRepository) List(ctx context.Context, query persistence.CurrencyQuery) ([]persistence.CurrencyView, int64, error) {
	ret := _m.Called(ctx, query)
	var r0 []persistence.CurrencyView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]persistence.CurrencyView)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

// NewMockCurrencyRepository creates a new instance of MockCurrencyRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCurrencyRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCurrencyRepository {
	m := &MockCurrencyRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
