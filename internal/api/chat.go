package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/buddyup-app/go-buddyup/internal/types"
)

func (c *Client) ListChats(ctx context.Context) ([]types.Chat, error) {
	var chats []types.Chat
	if err := c.do(ctx, http.MethodGet, "/api/chat", nil, &chats); err != nil {
		return nil, err
	}

	if chats == nil {
		chats = []types.Chat{}
	}

	return chats, nil
}

func (c *Client) GetChat(ctx context.Context, id string) (types.Chat, error) {
	var chat types.Chat
	path := "/api/chat/" + url.PathEscape(id)
	if err := c.do(ctx, http.MethodGet, path, nil, &chat); err != nil {
		return types.Chat{}, err
	}

	return chat, nil
}

// GetMessages returns one page of a chat's history, oldest first. Screens
// prepend older pages to the locally appended real-time tail.
func (c *Client) GetMessages(ctx context.Context, chatId string, page, limit int) ([]types.Message, error) {
	path := fmt.Sprintf("/api/chat/%s/messages?page=%d&limit=%d", url.PathEscape(chatId), page, limit)

	var messages []types.Message
	if err := c.do(ctx, http.MethodGet, path, nil, &messages); err != nil {
		return nil, err
	}

	if messages == nil {
		messages = []types.Message{}
	}

	return messages, nil
}
