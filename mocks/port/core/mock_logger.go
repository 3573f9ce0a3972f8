package core

import (
	coreport "github.com/auctionhub/currency-service/internal/domain/port/core"
	"github.com/stretchr/testify/mock"
)

// MockLogger is a mock type for the Logger type
type MockLogger struct {
	mock.Mock
}

// SetLevel provides a mock function with given fields: level
func (_m *MockLogger) SetLevel(level coreport.LogLevel) {
	_m.Called(level)
}

// GetLevel provides a mock function with no fields
func (_m *MockLogger) GetLevel() coreport.LogLevel {
	ret := _m.Called()
	return ret.Get(0).(coreport.LogLevel)
}

// Named provides a mock function with given fields: name
func (_m *MockLogger) Named(name string) coreport.Logger {
	ret := _m.Called(name)
	if ret.Get(0) == nil {
		return nil
	}
	return ret.Get(0).(coreport.Logger)
}

// Debug provides a mock function with given fields: message, fields
func (_m *MockLogger) Debug(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Info provides a mock function with given fields: message, fields
func (_m *MockLogger) Info(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Warn provides a mock function with given fields: message, fields
func (_m *MockLogger) Warn(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Error provides a mock function with given fields: message, fields
func (_m *MockLogger) Error(message string, fields map[string]any) {
	_m.Called(message, fields)
}

// Flush provides a mock function with no fields
func (_m *MockLogger) Flush() error {
	ret := _m.Called()
	return ret.Error(0)
}

// AllowAll accepts any log call, for tests that do not assert on logging
func (_m *MockLogger) AllowAll() *MockLogger {
	for _, method := range []string{"Debug", "Info", "Warn", "Error"} {
		_m.On(method, mock.Anything, mock.Anything).Maybe()
	}
	_m.On("Named", mock.Anything).Return(_m).Maybe()
	_m.On("Flush").Return(nil).Maybe()
	return _m
}

// NewMockLogger creates a new instance of MockLogger. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockLogger(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogger {
	m := &MockLogger{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
