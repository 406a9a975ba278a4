package api

import (
	"context"

	"github.com/buddyup-app/go-buddyup/internal/types"
	"github.com/stretchr/testify/mock"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) SetToken(token string) {
	m.Called(token)
}
func (m *MockBackend) ClearToken() {
	m.Called()
}
func (m *MockBackend) Register(ctx context.Context, params RegisterParams) (LoginResponse, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(LoginResponse), args.Error(1)
}
func (m *MockBackend) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(LoginResponse), args.Error(1)
}
func (m *MockBackend) CurrentUser(ctx context.Context) (types.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.User), args.Error(1)
}
func (m *MockBackend) UpdateProfile(ctx context.Context, params UpdateProfileParams) (types.User, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(types.User), args.Error(1)
}
func (m *MockBackend) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	args := m.Called(ctx, currentPassword, newPassword)
	return args.Error(0)
}
func (m *MockBackend) ListActivities(ctx context.Context) ([]types.Activity, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Activity), args.Error(1)
}
func (m *MockBackend) GetActivity(ctx context.Context, id string) (types.Activity, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.Activity), args.Error(1)
}
func (m *MockBackend) CreateActivity(ctx context.Context, params CreateActivityParams) (types.Activity, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(types.Activity), args.Error(1)
}
func (m *MockBackend) JoinActivity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBackend) LeaveActivity(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBackend) RequestToJoin(ctx context.Context, activityId, message string) (types.JoinRequest, error) {
	args := m.Called(ctx, activityId, message)
	return args.Get(0).(types.JoinRequest), args.Error(1)
}
func (m *MockBackend) ListJoinRequests(ctx context.Context) ([]types.JoinRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.JoinRequest), args.Error(1)
}
func (m *MockBackend) RespondJoinRequest(ctx context.Context, requestId string, accept bool) error {
	args := m.Called(ctx, requestId, accept)
	return args.Error(0)
}
func (m *MockBackend) ListChats(ctx context.Context) ([]types.Chat, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Chat), args.Error(1)
}
func (m *MockBackend) GetChat(ctx context.Context, id string) (types.Chat, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(types.Chat), args.Error(1)
}
func (m *MockBackend) GetMessages(ctx context.Context, chatId string, page, limit int) ([]types.Message, error) {
	args := m.Called(ctx, chatId, page, limit)
	return args.Get(0).([]types.Message), args.Error(1)
}
func (m *MockBackend) ListNotifications(ctx context.Context) ([]types.Notification, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.Notification), args.Error(1)
}
func (m *MockBackend) MarkNotificationRead(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockBackend) ListTiers(ctx context.Context) ([]types.SubscriptionTier, error) {
	args := m.Called(ctx)
	return args.Get(0).([]types.SubscriptionTier), args.Error(1)
}
func (m *MockBackend) UpgradeSubscription(ctx context.Context, tierId string) (types.User, error) {
	args := m.Called(ctx, tierId)
	return args.Get(0).(types.User), args.Error(1)
}
