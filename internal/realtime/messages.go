package realtime

import (
	"time"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

type baseFrame struct {
	Id        string    `json:"id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// clientFrame is the outbound wire format. Exactly one of the event fields
// is set per frame.
type clientFrame struct {
	baseFrame
	SendMessage *SendMessage `json:"sendMessage,omitempty"`
	StartTyping *Typing      `json:"startTyping,omitempty"`
	StopTyping  *Typing      `json:"stopTyping,omitempty"`
	MarkRead    *MarkRead    `json:"markMessagesAsRead,omitempty"`
}

type SendMessage struct {
	ChatId  string            `json:"chat_id"`
	Content string            `json:"content"`
	Type    types.MessageType `json:"type"`
}

type Typing struct {
	ChatId string `json:"chat_id"`
}

type MarkRead struct {
	ChatId string `json:"chat_id"`
}

// ServerEvent is the inbound union. Exactly one of the event fields is set.
type ServerEvent struct {
	Id           string         `json:"id,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
	NewMessage   *types.Message `json:"newMessage,omitempty"`
	UserTyping   *TypingEvent   `json:"userTyping,omitempty"`
	MessagesRead *ReadEvent     `json:"messagesRead,omitempty"`
	Error        *ErrorEvent    `json:"error,omitempty"`
}

type TypingEvent struct {
	ChatId string `json:"chat_id"`
	UserId string `json:"user_id"`
	Typing bool   `json:"typing"`
}

type ReadEvent struct {
	ChatId string    `json:"chat_id"`
	UserId string    `json:"user_id"`
	ReadAt time.Time `json:"read_at"`
}

type ErrorEvent struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func Now() time.Time {
	return time.Now().UTC().Round(time.Millisecond)
}
