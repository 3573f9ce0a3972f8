package core

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MockMetricsRecorder is a mock type for the MetricsRecorder type
type MockMetricsRecorder struct {
	mock.Mock
}

// RecordMutation provides a mock function with given fields: txType, outcome, duration
func (_m *MockMetricsRecorder) RecordMutation(txType string, outcome string, duration time.Duration) {
	_m.Called(txType, outcome, duration)
}

// RecordLedgerCreated provides a mock function with no fields
func (_m *MockMetricsRecorder) RecordLedgerCreated() {
	_m.Called()
}

// SetQueueWorkers provides a mock function with given fields: n
func (_m *MockMetricsRecorder) SetQueueWorkers(n int) {
	_m.Called(n)
}

// RecordEventPublished provides a mock function with given fields: event, outcome
func (_m *MockMetricsRecorder) RecordEventPublished(event string, outcome string) {
	_m.Called(event, outcome)
}

// AllowAll accepts any metric call
func (_m *MockMetricsRecorder) AllowAll() *MockMetricsRecorder {
	_m.On("RecordMutation", mock.Anything, mock.Anything, mock.Anything).Maybe()
	_m.On("RecordLedgerCreated").Maybe()
	_m.On("SetQueueWorkers", mock.Anything).Maybe()
	_m.On("RecordEventPublished", mock.Anything, mock.Anything).Maybe()
	return _m
}

// NewMockMetricsRecorder creates a new instance of MockMetricsRecorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockMetricsRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMetricsRecorder {
	m := &MockMetricsRecorder{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
