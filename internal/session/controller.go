package session

import (
	"context"
	"errors"
	"log"
	"slices"
	"sync"

	"github.com/buddyup-app/go-buddyup/internal/api"
	"github.com/buddyup-app/go-buddyup/internal/config"
	"github.com/buddyup-app/go-buddyup/internal/realtime"
	"github.com/buddyup-app/go-buddyup/internal/stats"
	"github.com/buddyup-app/go-buddyup/internal/tokenstore"
	"github.com/buddyup-app/go-buddyup/internal/types"
	"golang.org/x/sync/singleflight"
)

const (
	// OfflineUserId marks the degraded placeholder user installed when a
	// persisted token exists but the current-user fetch fails or times out.
	OfflineUserId = "offline-user"
	// GuestUserId is the in-memory guest placeholder.
	GuestUserId = "guest-user"

	// guestToken is a sentinel credential for guest sessions. It is never
	// persisted; guests are gone after a restart.
	guestToken = "guest-session-token"
)

var ErrNotConnected = errors.New("realtime channel not connected")

type Phase int

const (
	PhaseUninitialized Phase = iota
	PhaseBootstrapping
	PhaseReady
)

// RealtimeChannel is the slice of realtime.Channel the controller needs.
type RealtimeChannel interface {
	Events() <-chan realtime.ServerEvent
	SendMessage(chatId, content string, msgType types.MessageType) error
	StartTyping(chatId string) error
	StopTyping(chatId string) error
	MarkMessagesAsRead(chatId string) error
	TypingUsers(chatId string) []string
	Close() error
}

// ChannelFactory opens a realtime channel for an authenticated session.
// The context is cancelled when the session ends.
type ChannelFactory func(ctx context.Context, token string) (RealtimeChannel, error)

// Controller owns the client's session state and cached collections. It is
// an injectable value, not a singleton: tests and apps construct isolated
// instances.
type Controller struct {
	log        *log.Logger
	backend    api.Backend
	store      tokenstore.Store
	newChannel ChannelFactory
	stats      stats.StatsProvider
	cfg        *config.Config

	group singleflight.Group

	mu            sync.Mutex
	phase         Phase
	sessionGen    int
	user          *types.User
	token         string
	isGuest       bool
	degraded      bool
	dataLoaded    bool
	activities    []types.Activity
	chats         []types.Chat
	notifications []types.Notification
	joinRequests  []types.JoinRequest
	tiers         []types.SubscriptionTier
	channel       RealtimeChannel
	sessionCtx    context.Context
	sessionCancel context.CancelFunc
}

func NewController(backend api.Backend, store tokenstore.Store, factory ChannelFactory, sp stats.StatsProvider, cfg *config.Config, logger *log.Logger) *Controller {
	return &Controller{
		log:        logger,
		backend:    backend,
		store:      store,
		newChannel: factory,
		stats:      sp,
		cfg:        cfg,
		// collections are empty arrays from the start, never nil
		activities:    []types.Activity{},
		chats:         []types.Chat{},
		notifications: []types.Notification{},
		joinRequests:  []types.JoinRequest{},
		tiers:         []types.SubscriptionTier{},
	}
}

// IsAuthenticated holds iff both user and token are set; no code path sets
// one without the other.
func (c *Controller) IsAuthenticated() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil && c.token != ""
}

func (c *Controller) IsGuest() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.isGuest
}

// IsOffline reports whether the session degraded to the offline placeholder
// user during bootstrap.
func (c *Controller) IsOffline() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.degraded
}

func (c *Controller) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase != PhaseReady
}

func (c *Controller) User() *types.User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.user == nil {
		return nil
	}
	u := *c.user
	return &u
}

func (c *Controller) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

func (c *Controller) Activities() []types.Activity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.activities)
}

func (c *Controller) Chats() []types.Chat {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.chats)
}

func (c *Controller) Notifications() []types.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.notifications)
}

func (c *Controller) JoinRequests() []types.JoinRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.joinRequests)
}

func (c *Controller) Tiers() []types.SubscriptionTier {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.tiers)
}

func (c *Controller) currentGen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionGen
}

// openSession installs user and token atomically and, for online
// authenticated sessions, opens the realtime channel. Channel failures are
// non-fatal: the REST surface still works without it.
func (c *Controller) openSession(token string, user types.User, guest, degraded bool) {
	sessionCtx, cancel := context.WithCancel(context.Background())

	c.mu.Lock()
	c.sessionGen++
	c.token = token
	u := user
	c.user = &u
	c.isGuest = guest
	c.degraded = degraded
	c.dataLoaded = false
	c.sessionCtx = sessionCtx
	c.sessionCancel = cancel
	c.phase = PhaseReady
	c.mu.Unlock()

	c.stats.Incr(stats.ActiveSessions)

	if guest || degraded {
		return
	}

	ch, err := c.newChannel(sessionCtx, token)
	if err != nil {
		c.log.Println("open realtime channel:", err)
		return
	}

	c.mu.Lock()
	c.channel = ch
	c.mu.Unlock()

	go c.consumeEvents(ch)
}

// teardownSession cancels the session context so in-flight work is aborted
// and its stale results are discarded, and closes the realtime channel.
func (c *Controller) teardownSession() {
	c.mu.Lock()
	cancel := c.sessionCancel
	ch := c.channel
	c.sessionGen++
	c.sessionCancel = nil
	c.sessionCtx = nil
	c.channel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		c.stats.Decr(stats.ActiveSessions)
	}
	if ch != nil {
		ch.Close()
	}
}

// Shutdown ends the running session without touching the persisted token.
// Used on process exit; the next bootstrap resumes the session.
func (c *Controller) Shutdown() {
	c.teardownSession()
}
