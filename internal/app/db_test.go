package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antlu/contest-assistant/internal/secrets"
)

func openTestDB(t *testing.T) *database {
	t.Helper()
	db := OpenDB(filepath.Join(t.TempDir(), "test.sqlite3"))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDatabaseSnapshots(t *testing.T) {
	db := openTestDB(t)

	t.Run("empty database", func(t *testing.T) {
		snapshots, err := db.LoadSnapshots()
		require.NoError(t, err)
		assert.Empty(t, snapshots)
	})

	t.Run("insert then update", func(t *testing.T) {
		require.NoError(t, db.SaveSnapshot("g1", []byte(`{"guild_id":"g1"}`)))
		require.NoError(t, db.SaveSnapshot("g2", []byte(`{"guild_id":"g2"}`)))
		require.NoError(t, db.SaveSnapshot("g1", []byte(`{"guild_id":"g1","channel_id":"c1"}`)))

		snapshots, err := db.LoadSnapshots()
		require.NoError(t, err)
		require.Len(t, snapshots, 2)
		assert.JSONEq(t, `{"guild_id":"g1","channel_id":"c1"}`, string(snapshots["g1"]))
		assert.JSONEq(t, `{"guild_id":"g2"}`, string(snapshots["g2"]))
	})
}

func TestCredentialStore(t *testing.T) {
	db := openTestDB(t)
	cipher := secrets.Cipher("6368616e676520746869732070617373776f726420746f206120736563726574")
	store := NewCredentialStore(db, cipher)

	t.Run("missing credential", func(t *testing.T) {
		value, err := store.Get("gateway_token")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, store.Put("gateway_token", "s3cret"))

		value, err := store.Get("gateway_token")
		require.NoError(t, err)
		assert.Equal(t, "s3cret", value)

		// The raw row must not contain the plaintext.
		var raw string
		require.NoError(t, db.QueryRow("SELECT value FROM credentials WHERE name = ?", "gateway_token").Scan(&raw))
		assert.NotContains(t, raw, "s3cret")
	})

	t.Run("overwrite", func(t *testing.T) {
		require.NoError(t, store.Put("gateway_token", "rotated"))

		value, err := store.Get("gateway_token")
		require.NoError(t, err)
		assert.Equal(t, "rotated", value)
	})
}
