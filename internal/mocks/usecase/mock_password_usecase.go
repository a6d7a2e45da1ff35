package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"accounts/internal/domain/entity"
	"accounts/internal/usecase"
)

// MockPasswordUsecase is a mock type for the PasswordUsecase type
type MockPasswordUsecase struct {
	mock.Mock
}

// SetPassword provides a mock function with given fields: ctx, requestor, targetEmail, input
func (_m *MockPasswordUsecase) SetPassword(ctx context.Context, requestor entity.Requestor, targetEmail string, input *usecase.SetPasswordInput) (*usecase.SetPasswordOutput, error) {
	ret := _m.Called(ctx, requestor, targetEmail, input)

	var out *usecase.SetPasswordOutput
	if v := ret.Get(0); v != nil {
		out = v.(*usecase.SetPasswordOutput)
	}

	return out, ret.Error(1)
}

// NewMockPasswordUsecase creates a new instance of MockPasswordUsecase. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewMockPasswordUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockPasswordUsecase {
	m := &MockPasswordUsecase{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
