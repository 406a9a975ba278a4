package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/buddyup-app/go-buddyup/internal/stats"
	"github.com/go-playground/validator/v10"
)

// Doer is the transport seam; *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client issues requests against the BuddyUp REST backend and unwraps its
// {success, data|message|errors} envelope into flat typed responses.
type Client struct {
	baseURL  string
	http     Doer
	log      *log.Logger
	stats    stats.StatsProvider
	deviceID string
	validate *validator.Validate

	tokenLock sync.RWMutex
	token     string
}

func NewClient(baseURL string, doer Doer, deviceID string, sp stats.StatsProvider, logger *log.Logger) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     doer,
		log:      logger,
		stats:    sp,
		deviceID: deviceID,
		validate: validator.New(),
	}
}

// SetToken installs the bearer token sent on subsequent requests.
func (c *Client) SetToken(token string) {
	c.tokenLock.Lock()
	defer c.tokenLock.Unlock()
	c.token = token
}

func (c *Client) ClearToken() {
	c.SetToken("")
}

func (c *Client) currentToken() string {
	c.tokenLock.RLock()
	defer c.tokenLock.RUnlock()
	return c.token
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`
}

// do performs a request and decodes the response envelope into out. Backend
// failures come back as *Error; transport and decode failures are mapped to
// the normalized network error and never escape as raw transport detail.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.deviceID != "" {
		req.Header.Set("X-Device-Id", c.deviceID)
	}
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.stats.Incr(stats.ApiRequests)

	resp, err := c.http.Do(req)
	if err != nil {
		c.stats.Incr(stats.ApiRequestErrors)
		c.log.Printf("%s %s: %v", method, path, err)
		return NewNetworkError(err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.stats.Incr(stats.ApiRequestErrors)
		c.log.Printf("%s %s: decode envelope: %v", method, path, err)
		return NewNetworkError(err)
	}

	if !env.Success {
		c.stats.Incr(stats.ApiRequestErrors)
		msg := env.Message
		if msg == "" {
			msg = strings.ToLower(http.StatusText(resp.StatusCode))
		}
		return &Error{
			StatusCode: resp.StatusCode,
			Message:    msg,
			Fields:     env.Errors,
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			c.stats.Incr(stats.ApiRequestErrors)
			return NewNetworkError(err)
		}
	}

	return nil
}

// validateParams runs client-side validation before any bytes hit the wire.
func (c *Client) validateParams(params any) error {
	err := c.validate.Struct(params)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("validate params: %w", err)
	}

	fields := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}

	return &Error{
		StatusCode: http.StatusBadRequest,
		Message:    "validation failed",
		Fields:     fields,
	}
}
