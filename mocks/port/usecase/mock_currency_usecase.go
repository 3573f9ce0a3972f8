package usecase

import (
	"context"

	"github.com/auctionhub/currency-service/internal/domain/entity"
	"github.com/auctionhub/currency-service/internal/domain/port/persistence"
	"github.com/auctionhub/currency-service/internal/domain/port/usecase"
	"github.com/stretchr/testify/mock"
)

// MockCurrencyUseCase is a mock type for the CurrencyUseCase type
type MockCurrencyUseCase struct {
	mock.Mock
}

// ApplyMutation provides a mock function with given fields: ctx, req
func (_m *MockCurrencyUseCase) ApplyMutation(ctx context.Context, req usecase.MutationRequest) (*usecase.MutationResult, error) {
	ret := _m.Called(ctx, req)
	var r0 *usecase.MutationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.MutationResult)
	}
	return r0, ret.Error(1)
}

// GetCurrency provides a mock function with given fields: ctx, userID
func (_m *MockCurrencyUseCase) GetCurrency(ctx context.Context, userID uint64) (*entity.Currency, bool, error) {
	ret := _m.Called(ctx, userID)
	var r0 *entity.Currency
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.Currency)
	}
	return r0, ret.Bool(1), ret.Error(2)
}

// Charge provides a mock function with given fields: ctx, req
func (_m *MockCurrencyUseCase) Charge(ctx context.Context, req usecase.ChargeRequest) (*usecase.MutationResult, error) {
	ret := _m.Called(ctx, req)
	var r0 *usecase.MutationResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.MutationResult)
	}
	return r0, ret.Error(1)
}

// ListTransactions provides a mock function with given fields: ctx, filter
func (_m *MockCurrencyUseCase) ListTransactions(ctx context.Context, filter usecase.TransactionFilter) (*usecase.TransactionPage, error) {
	ret := _m.Called(ctx, filter)
	var r0 *usecase.TransactionPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.TransactionPage)
	}
	return r0, ret.Error(1)
}

// ProvisionLedger provides a mock function with given fields: ctx, user
func (_m *MockCurrencyUseCase) ProvisionLedger(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// TouchLedger provides a mock function with given fields: ctx, user
func (_m *MockCurrencyUseCase) TouchLedger(ctx context.Context, user *entity.User) error {
	ret := _m.Called(ctx, user)
	return ret.Error(0)
}

// AdminListCurrencies provides a mock function with given fields: ctx, filter
func (_m *MockCurrencyUseCase) AdminListCurrencies(ctx context.Context, filter usecase.AdminCurrencyFilter) (*usecase.CurrencyPage, error) {
	ret := _m.Called(ctx, filter)
	var r0 *usecase.CurrencyPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.CurrencyPage)
	}
	return r0, ret.Error(1)
}

// AdminGetCurrency provides a mock function with given fields: ctx, userID
func (_m *MockCurrencyUseCase) AdminGetCurrency(ctx context.Context, userID uint64) (*persistence.CurrencyView, error) {
	ret := _m.Called(ctx, userID)
	var r0 *persistence.CurrencyView
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*persistence.CurrencyView)
	}
	return r0, ret.Error(1)
}

// AdminListTransactions provides a mock function with given fields: ctx, filter
func (_m *MockCurrencyUseCase) AdminListTransactions(ctx context.Context, filter usecase.AdminTransactionFilter) (*usecase.TransactionPage, error) {
	ret := _m.Called(ctx, filter)
	var r0 *usecase.TransactionPage
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*usecase.TransactionPage)
	}
	return r0, ret.Error(1)
}

// AdminGetTransaction provides a mock function with given fields: ctx, id
func (_m *MockCurrencyUseCase) AdminGetTransaction(ctx context.Context, id uint64) (*entity.CurrencyTransaction, error) {
	ret := _m.Called(ctx, id)
	var r0 *entity.CurrencyTransaction
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*entity.CurrencyTransaction)
	}
	return r0, ret.Error(1)
}

// NewMockCurrencyUseCase creates a new instance of MockCurrencyUseCase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockCurrencyUseCase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockCurrencyUseCase {
	m := &MockCurrencyUseCase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
