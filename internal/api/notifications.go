package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

func (c *Client) ListNotifications(ctx context.Context) ([]types.Notification, error) {
	var notifications []types.Notification
	if err := c.do(ctx, http.MethodGet, "/api/notifications", nil, &notifications); err != nil {
		return nil, err
	}

	if notifications == nil {
		notifications = []types.Notification{}
	}

	return notifications, nil
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/notifications/%s/read", url.PathEscape(id))
	return c.do(ctx, http.MethodPut, path, nil, nil)
}
