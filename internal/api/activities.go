package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

type CreateActivityParams struct {
	Title           string         `json:"title" validate:"required"`
	Description     string         `json:"description,omitempty"`
	Location        types.Location `json:"location"`
	StartsAt        time.Time      `json:"starts_at" validate:"required"`
	EndsAt          time.Time      `json:"ends_at,omitempty"`
	MaxParticipants int            `json:"max_participants,omitempty" validate:"gte=0"`
}

type joinRequestBody struct {
	Message string `json:"message,omitempty"`
}

func (c *Client) ListActivities(ctx context.Context) ([]types.Activity, error) {
	var activities []types.Activity
	if err := c.do(ctx, http.MethodGet, "/api/activities", nil, &activities); err != nil {
		return nil, err
	}

	if activities == nil {
		activities = []types.Activity{}
	}

	return activities, nil
}

func (c *Client) GetActivity(ctx context.Context, id string) (types.Activity, error) {
	var activity types.Activity
	path := "/api/activities/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &activity); err != nil {
		return types.Activity{}, err
	}

	return activity, nil
}

func (c *Client) CreateActivity(ctx context.Context, params CreateActivityParams) (types.Activity, error) {
	if err := c.validateParams(params); err != nil {
		return types.Activity{}, err
	}

	var activity types.Activity
	if err := c.do(ctx, http.MethodPost, "/api/activities", params, &activity); err != nil {
		return types.Activity{}, err
	}

	return activity, nil
}

func (c *Client) JoinActivity(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/activities/%s/join", url.PathEscape(id))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

func (c *Client) LeaveActivity(ctx context.Context, id string) error {
	path := fmt.Sprintf("/api/activities/%s/leave", url.PathEscape(id))
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// RequestToJoin files a join request for activities that require the
// creator's approval.
func (c *Client) RequestToJoin(ctx context.Context, activityId, message string) (types.JoinRequest, error) {
	path := fmt.Sprintf("/api/activities/%s/join-request", url.PathEscape(activityId))

	var jr types.JoinRequest
	if err := c.do(ctx, http.MethodPost, path, joinRequestBody{Message: message}, &jr); err != nil {
		return types.JoinRequest{}, err
	}

	return jr, nil
}

func (c *Client) ListJoinRequests(ctx context.Context) ([]types.JoinRequest, error) {
	var requests []types.JoinRequest
	if err := c.do(ctx, http.MethodGet, "/api/activities/requests", nil, &requests); err != nil {
		return nil, err
	}

	if requests == nil {
		requests = []types.JoinRequest{}
	}

	return requests, nil
}

// RespondJoinRequest resolves a pending request. The transition is terminal:
// the backend rejects responses to already-resolved requests.
func (c *Client) RespondJoinRequest(ctx context.Context, requestId string, accept bool) error {
	action := "reject"
	if accept {
		action = "accept"
	}

	path := fmt.Sprintf("/api/activities/requests/%s/%s", url.PathEscape(requestId), action)
	return c.do(ctx, http.MethodPost, path, nil, nil)
}
