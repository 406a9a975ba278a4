package tokenstore

import (
	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Token() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
func (m *MockStore) Save(token string) error {
	args := m.Called(token)
	return args.Error(0)
}
func (m *MockStore) Clear() error {
	args := m.Called()
	return args.Error(0)
}
func (m *MockStore) DeviceID() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}
