package service

import (
	"github.com/stretchr/testify/mock"

	domainservice "accounts/internal/domain/service"
)

// MockTokenService is a mock type for the TokenService type
type MockTokenService struct {
	mock.Mock
}

// ValidateToken provides a mock function with given fields: tokenString
func (_m *MockTokenService) ValidateToken(tokenString string) (*domainservice.Claims, error) {
	ret := _m.Called(tokenString)

	var claims *domainservice.Claims
	if v := ret.Get(0); v != nil {
		claims = v.(*domainservice.Claims)
	}

	return claims, ret.Error(1)
}

// NewMockTokenService creates a new instance of MockTokenService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockTokenService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
