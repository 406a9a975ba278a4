package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig(t *testing.T) {
	var (
		baseURL  = "https://api.buddyup.example"
		wsURL    = "wss://api.buddyup.example/ws"
		stateDir = "/tmp/buddyup"
	)

	tcases := []struct {
		name     string
		baseURL  string
		wsURL    string
		stateDir string
		err      bool
	}{
		{
			name:     "valid config",
			baseURL:  baseURL,
			wsURL:    wsURL,
			stateDir: stateDir,
			err:      false,
		},
		{
			name:     "empty base URL",
			baseURL:  "",
			wsURL:    wsURL,
			stateDir: stateDir,
			err:      true,
		},
		{
			name:     "empty websocket URL",
			baseURL:  baseURL,
			wsURL:    "",
			stateDir: stateDir,
			err:      true,
		},
		{
			name:     "empty state dir",
			baseURL:  baseURL,
			wsURL:    wsURL,
			stateDir: "",
			err:      true,
		},
		{
			name:     "base URL with websocket scheme",
			baseURL:  wsURL,
			wsURL:    wsURL,
			stateDir: stateDir,
			err:      true,
		},
		{
			name:     "websocket URL with http scheme",
			baseURL:  baseURL,
			wsURL:    baseURL,
			stateDir: stateDir,
			err:      true,
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := NewConfig(tc.baseURL, tc.wsURL, tc.stateDir)
			if tc.err {
				assert.Error(t, err, "expected error for config: %s", tc.name)
				return
			}
			assert.NoError(t, err, "expected no error for config: %s", tc.name)

			assert.Equal(t, tc.baseURL, cfg.BaseURL, "expected base URL to match")
			assert.Equal(t, tc.wsURL, cfg.WebsocketURL, "expected websocket URL to match")
			assert.Equal(t, tc.stateDir, cfg.StateDir, "expected state dir to match")
			assert.Equal(t, defaultBootstrapTimeout, cfg.BootstrapTimeout, "expected default bootstrap timeout")
			assert.Equal(t, defaultUserFetchTimeout, cfg.UserFetchTimeout, "expected default user fetch timeout")
			assert.Equal(t, defaultTypingTTL, cfg.TypingTTL, "expected default typing TTL")
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := "base_url: https://api.buddyup.example\n" +
		"websocket_url: wss://api.buddyup.example/ws\n" +
		"state_dir: " + dir + "\n"
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	assert.NoError(t, err, "expected no error loading config file")
	assert.Equal(t, "https://api.buddyup.example", cfg.BaseURL)
	assert.Equal(t, "wss://api.buddyup.example/ws", cfg.WebsocketURL)
	assert.Equal(t, dir, cfg.StateDir)
}

func TestLoadFileErrors(t *testing.T) {
	tcases := []struct {
		name    string
		content string
	}{
		{
			name:    "invalid yaml",
			content: "base_url: [unclosed",
		},
		{
			name:    "missing fields",
			content: "base_url: https://api.buddyup.example\n",
		},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			assert.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			_, err := LoadFile(path)
			assert.Error(t, err, "expected error for config file: %s", tc.name)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err, "expected error for missing file")
	})
}
