package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultRequestTimeout   = 15 * time.Second
	defaultBootstrapTimeout = 2 * time.Second
	defaultUserFetchTimeout = 1500 * time.Millisecond
	defaultTypingTTL        = 5 * time.Second
)

type Config struct {
	BaseURL          string
	WebsocketURL     string
	StateDir         string
	RequestTimeout   time.Duration
	BootstrapTimeout time.Duration
	UserFetchTimeout time.Duration
	TypingTTL        time.Duration
}

func validateURL(rawURL string, schemes ...string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("parse url: %w", err)
	}

	for _, scheme := range schemes {
		if u.Scheme == scheme {
			return nil
		}
	}

	return fmt.Errorf("unsupported scheme %q in %q", u.Scheme, rawURL)
}

func NewConfig(baseURL, websocketURL, stateDir string) (*Config, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if websocketURL == "" {
		return nil, fmt.Errorf("websocket URL cannot be empty")
	}
	if stateDir == "" {
		return nil, fmt.Errorf("state directory cannot be empty")
	}

	if err := validateURL(baseURL, "http", "https"); err != nil {
		return nil, fmt.Errorf("base URL: %w", err)
	}
	if err := validateURL(websocketURL, "ws", "wss"); err != nil {
		return nil, fmt.Errorf("websocket URL: %w", err)
	}

	return &Config{
		BaseURL:          baseURL,
		WebsocketURL:     websocketURL,
		StateDir:         stateDir,
		RequestTimeout:   defaultRequestTimeout,
		BootstrapTimeout: defaultBootstrapTimeout,
		UserFetchTimeout: defaultUserFetchTimeout,
		TypingTTL:        defaultTypingTTL,
	}, nil
}

type fileConfig struct {
	BaseURL      string `yaml:"base_url"`
	WebsocketURL string `yaml:"websocket_url"`
	StateDir     string `yaml:"state_dir"`
}

// LoadFile reads a YAML config file and applies the same validation as
// NewConfig.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return NewConfig(fc.BaseURL, fc.WebsocketURL, fc.StateDir)
}
