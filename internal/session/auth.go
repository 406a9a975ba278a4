package session

import (
	"context"
	"fmt"

	"github.com/buddyup-app/go-buddyup/internal/api"
	"github.com/buddyup-app/go-buddyup/internal/types"
)

func (c *Controller) Login(ctx context.Context, email, password string) error {
	resp, err := c.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}

	if err := c.store.Save(resp.Token); err != nil {
		c.log.Println("persist token:", err)
	}
	c.backend.SetToken(resp.Token)

	c.teardownSession()
	c.openSession(resp.Token, resp.User, false, false)

	return nil
}

func (c *Controller) Register(ctx context.Context, params api.RegisterParams) error {
	resp, err := c.backend.Register(ctx, params)
	if err != nil {
		return err
	}

	if err := c.store.Save(resp.Token); err != nil {
		c.log.Println("persist token:", err)
	}
	c.backend.SetToken(resp.Token)

	c.teardownSession()
	c.openSession(resp.Token, resp.User, false, false)

	return nil
}

// ContinueAsGuest starts a memory-only pseudo-authenticated session with a
// sentinel token. Nothing is persisted; a restart lands back on
// unauthenticated.
func (c *Controller) ContinueAsGuest() {
	c.teardownSession()
	c.backend.SetToken(guestToken)
	c.openSession(guestToken, types.User{Id: GuestUserId, Name: "Guest"}, true, false)
}

// Logout tears down the session and clears all session and collection
// state. In-flight requests are aborted via the session context; any that
// already escaped resolve against a newer generation and are discarded.
func (c *Controller) Logout() error {
	c.teardownSession()
	c.backend.ClearToken()

	err := c.store.Clear()

	c.mu.Lock()
	c.user = nil
	c.token = ""
	c.isGuest = false
	c.degraded = false
	c.dataLoaded = false
	c.activities = []types.Activity{}
	c.chats = []types.Chat{}
	c.notifications = []types.Notification{}
	c.joinRequests = []types.JoinRequest{}
	c.tiers = []types.SubscriptionTier{}
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clear persisted token: %w", err)
	}

	return nil
}

// UpdateProfile overwrites the cached user wholesale with the server copy.
func (c *Controller) UpdateProfile(ctx context.Context, params api.UpdateProfileParams) error {
	gen := c.currentGen()

	user, err := c.backend.UpdateProfile(ctx, params)
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

func (c *Controller) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return c.backend.ChangePassword(ctx, currentPassword, newPassword)
}
