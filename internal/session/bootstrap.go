package session

import (
	"context"
	"fmt"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

func offlineUser() types.User {
	return types.User{
		Id:   OfflineUserId,
		Name: "Offline",
	}
}

// Bootstrap restores a persisted session. It always terminates within the
// configured ceiling: a slow or failing current-user fetch with a stored
// token degrades to the offline placeholder instead of blocking startup.
// Availability over consistency; a flaky network must never hang the splash
// screen.
func (c *Controller) Bootstrap(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseUninitialized {
		c.mu.Unlock()
		return fmt.Errorf("bootstrap already run")
	}
	c.phase = PhaseBootstrapping
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.BootstrapTimeout)
	defer cancel()

	token, err := c.store.Token()
	if err != nil {
		c.log.Println("read persisted token:", err)
		token = ""
	}

	if token == "" {
		c.mu.Lock()
		c.phase = PhaseReady
		c.mu.Unlock()
		return nil
	}

	c.backend.SetToken(token)

	fetchCtx, fetchCancel := context.WithTimeout(ctx, c.cfg.UserFetchTimeout)
	defer fetchCancel()

	type fetchResult struct {
		user types.User
		err  error
	}

	resultChan := make(chan fetchResult, 1)
	go func() {
		user, err := c.backend.CurrentUser(fetchCtx)
		resultChan <- fetchResult{user: user, err: err}
	}()

	var user types.User
	var degraded bool

	// Raced rather than trusting the fetch to honor its context; a hung
	// transport still cannot hold bootstrap past the timeout.
	select {
	case res := <-resultChan:
		if res.err != nil {
			c.log.Println("fetch current user:", res.err)
			user = offlineUser()
			degraded = true
		} else {
			user = res.user
		}
	case <-fetchCtx.Done():
		c.log.Println("current user fetch timed out, entering offline mode")
		user = offlineUser()
		degraded = true
	}

	// The stale token is kept on degradation: the backend decides validity
	// on the next call that reaches it.
	c.openSession(token, user, false, degraded)

	return nil
}
