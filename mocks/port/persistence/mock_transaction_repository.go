package persistence

import (
	"context"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository is a mock type for the TransactionRepository type
type MockTransactionRepository struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, transaction
func (_m *MockTransactionRepository) Create(ctx context.Context, transaction *entity.CurrencyTransaction) error {
	ret := _m.Called(ctx, transaction)
	if rf, ok := ret.Get(0).(func(context.Context, *entity.CurrencyTransaction) error); ok {
		return rf(ctx, transaction)
	}
	return ret.Error(0)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *MockTransactionRepository) GetByID(ctx context.Context, id uint64) (*entity.CurrencyTransaction, error) {
	ret := _m.Called(ctx, id)
	var r0 *entity.CurrencyTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.CurrencyTransaction)
	}
	return r0, ret.Error(1)
}

// GetByIdempotencyKey provides a mock function with given fields: ctx, userID, key
func (_m *MockTransactionRepository) GetByIdempotencyKey(ctx context.Context, userID uint64, key string) (*entity.CurrencyTransaction, error) {
	ret := _m.Called(ctx, userID, key)
	var r0 *entity.CurrencyTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.CurrencyTransaction)
	}
	return r0, ret.Error(1)
}

// List provides a mock function with given fields: ctx, query
func (_m *MockTransactionRepository) List(ctx context.Context, query persistence.TransactionQuery) ([]*entity.CurrencyTransaction, int64, error) {
	ret := _m.Called(ctx, query)
	var r0 []*entity.CurrencyTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*entity.CurrencyTransaction)
	}
	return r0, ret.Get(1).(int64), ret.Error(2)
}

// NewMockTransactionRepository creates a new instance of MockTransactionRepository. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTransactionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
