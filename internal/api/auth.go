package api

import (
	"context"
	"net/http"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

type RegisterParams struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the flattened shape of the auth envelope: the server
// nests token and user under data.
type LoginResponse struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

type UpdateProfileParams struct {
	Name        string                `json:"name,omitempty"`
	Bio         string                `json:"bio,omitempty"`
	AvatarUrl   string                `json:"avatar_url,omitempty"`
	Preferences types.UserPreferences `json:"preferences,omitempty"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (c *Client) Register(ctx context.Context, params RegisterParams) (LoginResponse, error) {
	if err := c.validateParams(params); err != nil {
		return LoginResponse{}, err
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", params, &resp); err != nil {
		return LoginResponse{}, err
	}

	return resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	req := LoginRequest{Email: email, Password: password}
	if err := c.validateParams(req); err != nil {
		return LoginResponse{}, err
	}

	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return LoginResponse{}, err
	}

	return resp, nil
}

func (c *Client) CurrentUser(ctx context.Context) (types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &user); err != nil {
		return types.User{}, err
	}

	return user, nil
}

// UpdateProfile replaces the cached user wholesale with the server's copy.
func (c *Client) UpdateProfile(ctx context.Context, params UpdateProfileParams) (types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile", params, &user); err != nil {
		return types.User{}, err
	}

	return user, nil
}

func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	req := changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}

	return c.do(ctx, http.MethodPut, "/api/auth/password", req, nil)
}
