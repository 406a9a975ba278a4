package api

import (
	"context"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

// Backend is the full surface of the BuddyUp REST API as consumed by the
// session controller. *Client is the production implementation.
type Backend interface {
	SetToken(token string)
	ClearToken()

	Register(ctx context.Context, params RegisterParams) (LoginResponse, error)
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	CurrentUser(ctx context.Context) (types.User, error)
	UpdateProfile(ctx context.Context, params UpdateProfileParams) (types.User, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error

	ListActivities(ctx context.Context) ([]types.Activity, error)
	GetActivity(ctx context.Context, id string) (types.Activity, error)
	CreateActivity(ctx context.Context, params CreateActivityParams) (types.Activity, error)
	JoinActivity(ctx context.Context, id string) error
	LeaveActivity(ctx context.Context, id string) error
	RequestToJoin(ctx context.Context, activityId, message string) (types.JoinRequest, error)
	ListJoinRequests(ctx context.Context) ([]types.JoinRequest, error)
	RespondJoinRequest(ctx context.Context, requestId string, accept bool) error

	ListChats(ctx context.Context) ([]types.Chat, error)
	GetChat(ctx context.Context, id string) (types.Chat, error)
	GetMessages(ctx context.Context, chatId string, page, limit int) ([]types.Message, error)

	ListNotifications(ctx context.Context) ([]types.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error

	ListTiers(ctx context.Context) ([]types.SubscriptionTier, error)
	UpgradeSubscription(ctx context.Context, tierId string) (types.User, error)
}
