package session

import (
	"github.com/buddyup-app/go-buddyup/internal/realtime"
	"github.com/buddyup-app/go-buddyup/internal/types"
)

func (c *Controller) channelRef() RealtimeChannel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.channel
}

func (c *Controller) SendChatMessage(chatId, content string, msgType types.MessageType) error {
	ch := c.channelRef()
	if ch == nil {
		return ErrNotConnected
	}

	return ch.SendMessage(chatId, content, msgType)
}

func (c *Controller) StartTyping(chatId string) error {
	ch := c.channelRef()
	if ch == nil {
		return ErrNotConnected
	}

	return ch.StartTyping(chatId)
}

func (c *Controller) StopTyping(chatId string) error {
	ch := c.channelRef()
	if ch == nil {
		return ErrNotConnected
	}

	return ch.StopTyping(chatId)
}

// MarkChatRead reports the read position to the backend and zeroes the
// local unread counter.
func (c *Controller) MarkChatRead(chatId string) error {
	ch := c.channelRef()
	if ch == nil {
		return ErrNotConnected
	}

	if err := ch.MarkMessagesAsRead(chatId); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.chats {
		if c.chats[i].Id == chatId {
			c.chats[i].UnreadCount = 0
			break
		}
	}

	return nil
}

func (c *Controller) TypingUsers(chatId string) []string {
	ch := c.channelRef()
	if ch == nil {
		return []string{}
	}

	return ch.TypingUsers(chatId)
}

func (c *Controller) consumeEvents(ch RealtimeChannel) {
	for ev := range ch.Events() {
		switch {
		case ev.NewMessage != nil:
			c.applyNewMessage(ev.NewMessage)
		case ev.MessagesRead != nil:
			c.applyMessagesRead(ev.MessagesRead)
		case ev.Error != nil:
			c.log.Printf("realtime error %d: %s", ev.Error.Code, ev.Error.Message)
		}
	}
}

// applyNewMessage patches the chat list's last-message preview in place.
// Appending to an open chat's full message array is the screen's business,
// not the controller's.
func (c *Controller) applyNewMessage(msg *types.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.chats {
		if c.chats[i].Id == msg.ChatId {
			m := *msg
			c.chats[i].LastMessage = &m
			c.chats[i].UnreadCount++
			return
		}
	}

	c.log.Printf("message for unknown chat %q", msg.ChatId)
}

func (c *Controller) applyMessagesRead(ev *realtime.ReadEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()

	currentId := ""
	if c.user != nil {
		currentId = c.user.Id
	}

	for i := range c.chats {
		if c.chats[i].Id != ev.ChatId {
			continue
		}
		if ev.UserId == currentId {
			c.chats[i].UnreadCount = 0
		} else if c.chats[i].LastMessage != nil {
			c.chats[i].LastMessage.Read = true
		}
		return
	}
}
