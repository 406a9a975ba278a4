package tokenstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/buddyup-app/go-buddyup/internal/testutil"
	"github.com/stretchr/testify/assert"
)

func newTestStore(t *testing.T) *FileStore {
	store, err := NewFileStore(t.TempDir(), testutil.TestLogger(t))
	assert.NoError(t, err, "expected no error creating store")
	return store
}

func TestTokenRoundTrip(t *testing.T) {
	store := newTestStore(t)

	tok, err := store.Token()
	assert.NoError(t, err, "expected no error reading missing token")
	assert.Empty(t, tok, "expected empty token before save")

	assert.NoError(t, store.Save("tok1"), "expected no error saving token")

	tok, err = store.Token()
	assert.NoError(t, err, "expected no error reading token")
	assert.Equal(t, "tok1", tok, "expected saved token")

	assert.NoError(t, store.Clear(), "expected no error clearing token")

	tok, err = store.Token()
	assert.NoError(t, err, "expected no error reading cleared token")
	assert.Empty(t, tok, "expected empty token after clear")
}

func TestSaveRejectsSentinels(t *testing.T) {
	tcases := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "stringified undefined", token: "undefined"},
		{name: "stringified null", token: "null"},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			store := newTestStore(t)
			assert.NoError(t, store.Save("existing"), "expected no error saving initial token")

			assert.NoError(t, store.Save(tc.token), "expected sentinel save to be a no-op")

			tok, err := store.Token()
			assert.NoError(t, err, "expected no error reading token")
			assert.Equal(t, "existing", tok, "expected storage to be unchanged")
		})
	}
}

func TestClearMissingToken(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Clear(), "expected clearing a missing token to succeed")
}

func TestDeviceIDStable(t *testing.T) {
	dir := t.TempDir()
	logger := testutil.TestLogger(t)

	store, err := NewFileStore(dir, logger)
	assert.NoError(t, err)

	id, err := store.DeviceID()
	assert.NoError(t, err, "expected no error generating device id")
	assert.NotEmpty(t, id, "expected a device id")

	// A second store over the same directory sees the same id.
	store2, err := NewFileStore(dir, logger)
	assert.NoError(t, err)

	id2, err := store2.DeviceID()
	assert.NoError(t, err, "expected no error reading device id")
	assert.Equal(t, id, id2, "expected device id to be stable across instances")
}

func TestTokenFilePermissions(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.Save("tok1"))

	info, err := os.Stat(filepath.Join(store.dir, tokenFile))
	assert.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm(), "expected token file to be private")
}

func TestNewFileStoreEmptyDir(t *testing.T) {
	_, err := NewFileStore("", testutil.TestLogger(t))
	assert.Error(t, err, "expected error for empty state directory")
}
