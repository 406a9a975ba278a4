package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/buddyup-app/go-buddyup/internal/stats"
	"github.com/buddyup-app/go-buddyup/internal/types"
	"github.com/gorilla/websocket"
	"github.com/teris-io/shortid"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingInterval   = (pongWait * 9) / 10
	maxMessageSize = 4096
)

var (
	ErrSendBufferFull = errors.New("send buffer full")
	ErrClosed         = errors.New("channel closed")
)

// Channel is the persistent duplex connection to the backend, keyed by the
// session's bearer token. Its lifecycle belongs to the session controller:
// opened on transition to authenticated, torn down on logout.
type Channel struct {
	conn   *websocket.Conn
	log    *log.Logger
	stats  stats.StatsProvider
	typing *typingTracker
	send   chan *clientFrame
	events chan ServerEvent
	stop   chan struct{}
	done   chan struct{}

	closeOnce sync.Once
}

// Dial connects to the real-time endpoint, authenticating with the bearer
// token, and starts the read/write pumps.
func Dial(ctx context.Context, wsURL, token string, typingTTL time.Duration, sp stats.StatsProvider, logger *log.Logger) (*Channel, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil {
			return nil, fmt.Errorf("dial %s: %w (status %d)", wsURL, err, resp.StatusCode)
		}
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	c := &Channel{
		conn:   conn,
		log:    logger,
		stats:  sp,
		typing: newTypingTracker(typingTTL),
		send:   make(chan *clientFrame, 256),
		events: make(chan ServerEvent, 256),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}

	go c.writePump()
	go c.readPump()

	return c, nil
}

// Events delivers inbound server events. The channel is closed when the
// connection is torn down.
func (c *Channel) Events() <-chan ServerEvent {
	return c.events
}

// Done is closed once the read pump has exited.
func (c *Channel) Done() <-chan struct{} {
	return c.done
}

func (c *Channel) SendMessage(chatId, content string, msgType types.MessageType) error {
	return c.queueFrame(&clientFrame{
		SendMessage: &SendMessage{
			ChatId:  chatId,
			Content: content,
			Type:    msgType,
		},
	})
}

func (c *Channel) StartTyping(chatId string) error {
	return c.queueFrame(&clientFrame{StartTyping: &Typing{ChatId: chatId}})
}

func (c *Channel) StopTyping(chatId string) error {
	return c.queueFrame(&clientFrame{StopTyping: &Typing{ChatId: chatId}})
}

func (c *Channel) MarkMessagesAsRead(chatId string) error {
	return c.queueFrame(&clientFrame{MarkRead: &MarkRead{ChatId: chatId}})
}

// TypingUsers returns the ordered set of users currently typing in a chat.
func (c *Channel) TypingUsers(chatId string) []string {
	return c.typing.users(chatId)
}

func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		c.conn.Close()
	})

	return nil
}

func (c *Channel) queueFrame(frame *clientFrame) error {
	select {
	case <-c.stop:
		return ErrClosed
	default:
	}

	id, err := shortid.Generate()
	if err != nil {
		return fmt.Errorf("generate frame id: %w", err)
	}
	frame.Id = id
	frame.Timestamp = Now()

	select {
	case c.send <- frame:
	default:
		c.log.Println("failed to queue frame, send buffer is full")
		return ErrSendBufferFull
	}

	return nil
}

func (c *Channel) writePump() {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
		c.log.Println("write pump exiting")
	}()

	for {
		select {
		case frame := <-c.send:
			bytes, err := json.Marshal(frame)
			if err != nil {
				c.log.Println("failed to serialize frame:", err)
				continue
			}

			if !c.writeMessage(websocket.TextMessage, bytes) {
				return
			}
			c.stats.Incr(stats.WsMessagesSent)
		case <-c.stop:
			return
		case <-ticker.C:
			if !c.writeMessage(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

func (c *Channel) readPump() {
	defer func() {
		c.conn.Close()
		close(c.events)
		close(c.done)
		c.log.Println("read pump exiting")
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(appData string) error { c.conn.SetReadDeadline(time.Now().Add(pongWait)); return nil })
	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.log.Printf("ws: read: %v", err)
			}
			break
		}

		var ev ServerEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			c.log.Println("error parsing event:", err)
			continue
		}

		c.stats.Incr(stats.WsMessagesReceived)

		if ev.UserTyping != nil {
			c.typing.apply(ev.UserTyping)
		}

		select {
		case c.events <- ev:
		default:
			c.log.Println("dropping event, events buffer is full")
		}
	}
}

func (c *Channel) writeMessage(msgType int, msg []byte) bool {
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))

	if err := c.conn.WriteMessage(msgType, msg); err != nil {
		if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure,
			websocket.CloseNormalClosure) {
			c.log.Printf("write message: %s", err)
		}
		return false
	}

	return true
}
