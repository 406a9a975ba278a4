package api

import (
	"context"
	"net/http"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

type upgradeRequest struct {
	TierId string `json:"tier_id"`
}

func (c *Client) ListTiers(ctx context.Context) ([]types.SubscriptionTier, error) {
	var tiers []types.SubscriptionTier
	if err := c.do(ctx, http.MethodGet, "/api/subscription/tiers", nil, &tiers); err != nil {
		return nil, err
	}

	if tiers == nil {
		tiers = []types.SubscriptionTier{}
	}

	return tiers, nil
}

// UpgradeSubscription returns the updated user so callers can overwrite
// their cached copy wholesale.
func (c *Client) UpgradeSubscription(ctx context.Context, tierId string) (types.User, error) {
	var user types.User
	if err := c.do(ctx, http.MethodPost, "/api/subscription/upgrade", upgradeRequest{TierId: tierId}, &user); err != nil {
		return types.User{}, err
	}

	return user, nil
}
