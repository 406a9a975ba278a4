package session

import (
	"context"
	"errors"

	"github.com/buddyup-app/go-buddyup/internal/api"
	"github.com/buddyup-app/go-buddyup/internal/stats"
	"github.com/buddyup-app/go-buddyup/internal/types"
)

// EnsureDataLoaded performs the one-shot bulk load of all collections for
// the current session. Concurrent callers coalesce onto a single flight;
// repeat callers are a no-op until RefreshData resets the flag.
func (c *Controller) EnsureDataLoaded(ctx context.Context) error {
	c.mu.Lock()
	if c.user == nil || c.token == "" {
		c.mu.Unlock()
		return nil
	}
	if c.dataLoaded {
		c.mu.Unlock()
		return nil
	}
	gen := c.sessionGen
	c.mu.Unlock()

	_, err, _ := c.group.Do("bulk", func() (any, error) {
		return nil, errors.Join(
			c.loadActivities(ctx),
			c.loadChats(ctx),
			c.loadNotifications(ctx),
			c.loadJoinRequests(ctx),
			c.loadTiers(ctx),
		)
	})

	// The attempt counts even if parts of it failed; RefreshData forces a
	// retry, per-collection errors are surfaced to the caller. A session
	// that ended mid-flight must not mark its successor loaded.
	c.mu.Lock()
	if c.sessionGen == gen {
		c.dataLoaded = true
	}
	c.mu.Unlock()

	c.stats.Incr(stats.DataLoads)

	return err
}

// RefreshData forces a full re-fetch (pull-to-refresh).
func (c *Controller) RefreshData(ctx context.Context) error {
	c.mu.Lock()
	c.dataLoaded = false
	c.mu.Unlock()

	return c.EnsureDataLoaded(ctx)
}

func (c *Controller) loadActivities(ctx context.Context) error {
	gen := c.currentGen()

	v, err, _ := c.group.Do("activities", func() (any, error) {
		return c.backend.ListActivities(ctx)
	})
	if err != nil {
		return err
	}

	items := v.([]types.Activity)
	if items == nil {
		items = []types.Activity{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		// session ended while the request was in flight
		return nil
	}
	c.activities = items

	return nil
}

func (c *Controller) loadChats(ctx context.Context) error {
	gen := c.currentGen()

	v, err, _ := c.group.Do("chats", func() (any, error) {
		return c.backend.ListChats(ctx)
	})
	if err != nil {
		return err
	}

	items := v.([]types.Chat)
	if items == nil {
		items = []types.Chat{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		return nil
	}
	c.chats = items

	return nil
}

func (c *Controller) loadNotifications(ctx context.Context) error {
	gen := c.currentGen()

	v, err, _ := c.group.Do("notifications", func() (any, error) {
		return c.backend.ListNotifications(ctx)
	})
	if err != nil {
		return err
	}

	items := v.([]types.Notification)
	if items == nil {
		items = []types.Notification{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		return nil
	}
	c.notifications = items

	return nil
}

func (c *Controller) loadJoinRequests(ctx context.Context) error {
	gen := c.currentGen()

	v, err, _ := c.group.Do("join-requests", func() (any, error) {
		return c.backend.ListJoinRequests(ctx)
	})
	if err != nil {
		return err
	}

	items := v.([]types.JoinRequest)
	if items == nil {
		items = []types.JoinRequest{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		return nil
	}
	c.joinRequests = items

	return nil
}

func (c *Controller) loadTiers(ctx context.Context) error {
	gen := c.currentGen()

	v, err, _ := c.group.Do("tiers", func() (any, error) {
		return c.backend.ListTiers(ctx)
	})
	if err != nil {
		return err
	}

	items := v.([]types.SubscriptionTier)
	if items == nil {
		items = []types.SubscriptionTier{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		return nil
	}
	c.tiers = items

	return nil
}

// Mutating actions are write-then-refetch: perform the call, and only on
// success re-pull the affected collections. A brief staleness window is
// traded for server-truth consistency.

func (c *Controller) CreateActivity(ctx context.Context, params api.CreateActivityParams) (types.Activity, error) {
	activity, err := c.backend.CreateActivity(ctx, params)
	if err != nil {
		return types.Activity{}, err
	}

	if err := c.loadActivities(ctx); err != nil {
		c.log.Println("refetch activities:", err)
	}

	return activity, nil
}

func (c *Controller) JoinActivity(ctx context.Context, id string) error {
	if err := c.backend.JoinActivity(ctx, id); err != nil {
		return err
	}

	return c.loadActivities(ctx)
}

func (c *Controller) LeaveActivity(ctx context.Context, id string) error {
	if err := c.backend.LeaveActivity(ctx, id); err != nil {
		return err
	}

	return c.loadActivities(ctx)
}

func (c *Controller) RequestToJoin(ctx context.Context, activityId, message string) (types.JoinRequest, error) {
	jr, err := c.backend.RequestToJoin(ctx, activityId, message)
	if err != nil {
		return types.JoinRequest{}, err
	}

	if err := c.loadJoinRequests(ctx); err != nil {
		c.log.Println("refetch join requests:", err)
	}

	return jr, nil
}

func (c *Controller) RespondJoinRequest(ctx context.Context, requestId string, accept bool) error {
	if err := c.backend.RespondJoinRequest(ctx, requestId, accept); err != nil {
		return err
	}

	return errors.Join(
		c.loadJoinRequests(ctx),
		c.loadActivities(ctx),
	)
}

// MarkNotificationRead flips the flag locally once the backend confirms.
func (c *Controller) MarkNotificationRead(ctx context.Context, id string) error {
	gen := c.currentGen()

	if err := c.backend.MarkNotificationRead(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		return nil
	}
	for i := range c.notifications {
		if c.notifications[i].Id == id {
			c.notifications[i].Read = true
			break
		}
	}

	return nil
}

func (c *Controller) UpgradeSubscription(ctx context.Context, tierId string) error {
	gen := c.currentGen()

	user, err := c.backend.UpgradeSubscription(ctx, tierId)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionGen != gen {
		return nil
	}
	c.user = &user

	return nil
}
