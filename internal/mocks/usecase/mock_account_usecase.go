// Package usecase provides testify mocks for the application use cases.
package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"accounts/internal/domain/entity"
	"accounts/internal/usecase"
)

// MockAccountUsecase is a mock type for the AccountUsecase type
type MockAccountUsecase struct {
	mock.Mock
}

// CreateAccount provides a mock function with given fields: ctx, requestor, input
func (_m *MockAccountUsecase) CreateAccount(ctx context.Context, requestor entity.Requestor, input *usecase.CreateAccountInput) (*usecase.CreateAccountOutput, error) {
	ret := _m.Called(ctx, requestor, input)

	var out *usecase.CreateAccountOutput
	if v := ret.Get(0); v != nil {
		out = v.(*usecase.CreateAccountOutput)
	}

	return out, ret.Error(1)
}

// NewMockAccountUsecase creates a new instance of MockAccountUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockAccountUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
