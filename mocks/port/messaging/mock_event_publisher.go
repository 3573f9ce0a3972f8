package messaging

import (
	"context"

	msgport "github.com/auctionhub/currency-service/internal/domain/port/messaging"
	"github.com/stretchr/testify/mock"
)

// MockEventPublisher is a mock type for the EventPublisher type
type MockEventPublisher struct {
	mock.Mock
}

// PublishTransactionCreated provides a mock function with given fields: ctx, event
func (_m *MockEventPublisher) PublishTransactionCreated(ctx context.Context, event msgport.TransactionCreatedEvent) error {
	ret := _m.Called(ctx, event)
	return ret.Error(0)
}

// Close provides a mock function with no fields
func (_m *MockEventPublisher) Close() error {
	ret := _m.Called()
	return ret.Error(0)
}

// NewMockEventPublisher creates a new instance of MockEventPublisher. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockEventPublisher(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
