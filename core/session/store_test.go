package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/darasa/core/session"
	localstore "github.com/trezcool/darasa/storage/local"
)

var alice = session.Identity{ID: "p1", Name: "Alice", Email: "alice@test.cd", Role: "faculty"}

func TestStore_restoreEmptyStorage(t *testing.T) {
	store := session.NewStore(localstore.NewMemStorage())

	sess := store.Session()
	assert.False(t, sess.Ready, "session must not be ready before restore")

	err := store.Restore()
	assert.NoError(t, err)

	sess = store.Session()
	assert.True(t, sess.Ready)
	assert.False(t, sess.LoggedIn())
}

func TestStore_loginRoundTrip(t *testing.T) {
	storage := localstore.NewMemStorage()

	store := session.NewStore(storage)
	assert.NoError(t, store.Restore())
	assert.NoError(t, store.Login(alice))

	sess := store.Session()
	assert.True(t, sess.LoggedIn())
	assert.Equal(t, alice, *sess.Identity)

	// a fresh store over the same storage restores the identity
	store2 := session.NewStore(storage)
	assert.NoError(t, store2.Restore())
	sess2 := store2.Session()
	assert.True(t, sess2.Ready)
	assert.True(t, sess2.LoggedIn())
	assert.Equal(t, alice, *sess2.Identity)
}

func TestStore_logoutRemovesPersistedIdentity(t *testing.T) {
	storage := localstore.NewMemStorage()

	store := session.NewStore(storage)
	assert.NoError(t, store.Restore())
	assert.NoError(t, store.Login(alice))
	assert.NoError(t, store.Logout())

	sess := store.Session()
	assert.True(t, sess.Ready)
	assert.False(t, sess.LoggedIn())

	store2 := session.NewStore(storage)
	assert.NoError(t, store2.Restore())
	assert.False(t, store2.Session().LoggedIn())

	// logging out twice is fine
	assert.NoError(t, store.Logout())
}

func TestStore_corruptBlobYieldsAbsentIdentity(t *testing.T) {
	storage := localstore.NewMemStorage()
	assert.NoError(t, storage.Persist("user", []byte("{not json")))

	store := session.NewStore(storage)
	err := store.Restore()
	assert.Error(t, err)

	sess := store.Session()
	assert.True(t, sess.Ready, "session becomes ready even when the blob is corrupt")
	assert.False(t, sess.LoggedIn())
}

func TestStore_loginBeforeRestoreWins(t *testing.T) {
	storage := localstore.NewMemStorage()
	other := session.Identity{ID: "p2", Name: "Bob", Email: "bob@test.cd", Role: "student"}
	data, _ := marshalIdentity(other)
	assert.NoError(t, storage.Persist("user", data))

	store := session.NewStore(storage)
	assert.NoError(t, store.Login(alice))
	assert.NoError(t, store.Restore())

	sess := store.Session()
	assert.True(t, sess.Ready)
	assert.Equal(t, alice, *sess.Identity, "restore must not clobber a newer login")
}

func TestStore_logoutBeforeRestoreWins(t *testing.T) {
	storage := localstore.NewMemStorage()
	data, _ := marshalIdentity(alice)
	assert.NoError(t, storage.Persist("user", data))

	store := session.NewStore(storage)
	assert.NoError(t, store.Logout())
	assert.NoError(t, store.Restore())

	sess := store.Session()
	assert.True(t, sess.Ready)
	assert.False(t, sess.LoggedIn(), "restore must not resurrect a logged-out identity")
}

func TestStore_restoreRunsOnce(t *testing.T) {
	storage := localstore.NewMemStorage()
	data, _ := marshalIdentity(alice)
	assert.NoError(t, storage.Persist("user", data))

	store := session.NewStore(storage)
	assert.NoError(t, store.Restore())
	assert.NoError(t, store.Logout())

	// the persisted blob changed behind our back; a second Restore is a no-op
	assert.NoError(t, storage.Persist("user", data))
	assert.NoError(t, store.Restore())
	assert.False(t, store.Session().LoggedIn())
}

func TestStore_sessionIsASnapshot(t *testing.T) {
	store := session.NewStore(localstore.NewMemStorage())
	assert.NoError(t, store.Restore())
	assert.NoError(t, store.Login(alice))

	sess := store.Session()
	sess.Identity.Name = "Mallory"

	assert.Equal(t, "Alice", store.Session().Identity.Name, "mutating a snapshot must not affect the store")
}

func marshalIdentity(id session.Identity) ([]byte, error) {
	// encode through a throwaway store to stay in sync with its wire format
	storage := localstore.NewMemStorage()
	store := session.NewStore(storage)
	if err := store.Login(id); err != nil {
		return nil, err
	}
	return storage.Read("user")
}
