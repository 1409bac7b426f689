package session

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// ErrNoValue is returned by Storage.Read when no value is persisted under the key.
var ErrNoValue = errors.New("no value stored")

// Storage is the persisted key-value slot the Store mirrors its identity into.
// Persistence is best-effort and local to the client device; it is NOT a
// security boundary: a forged persisted blob is trusted as if server-issued.
type Storage interface {
	Persist(key string, value []byte) error
	Read(key string) ([]byte, error)
	Remove(key string) error
}

const storageKey = "user"

// Store owns the current authenticated identity, mirrored into a Storage
// slot under a fixed key, overwritten on every identity change and removed
// on logout. The session survives indefinitely until explicit logout or the
// storage clears.
type Store struct {
	storage Storage

	restoreOnce sync.Once

	mu       sync.Mutex
	identity *Identity
	ready    bool
	written  bool // a Login/Logout landed before Restore completed
}

func NewStore(storage Storage) *Store {
	return &Store{storage: storage}
}

// Restore reads the persisted identity, once per Store lifetime. The session
// becomes ready whether or not an identity was found; a corrupt or unreadable
// blob yields an absent identity (and the error, for observability).
// Restore never overwrites an identity set by a Login that won the race.
func (s *Store) Restore() error {
	var err error
	s.restoreOnce.Do(func() {
		var data []byte
		data, err = s.storage.Read(storageKey)

		s.mu.Lock()
		defer s.mu.Unlock()
		defer func() { s.ready = true }()

		if s.written {
			err = nil // a newer Login/Logout wins over stale persisted data
			return
		}
		if err != nil {
			if errors.Cause(err) == ErrNoValue {
				err = nil
			} else {
				err = errors.Wrap(err, "reading persisted session")
			}
			return
		}
		var identity Identity
		if uerr := json.Unmarshal(data, &identity); uerr != nil {
			err = errors.Wrap(uerr, "decoding persisted session")
			return
		}
		s.identity = &identity
	})
	return err
}

// Login sets the identity and persists it, overwriting any previous entry
// (last write wins, no merge). The in-memory identity is set even when
// persisting fails; the error is returned for the caller to surface.
func (s *Store) Login(identity Identity) error {
	s.mu.Lock()
	s.identity = &identity
	s.written = true
	s.mu.Unlock()

	data, err := json.Marshal(identity)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err = s.storage.Persist(storageKey, data); err != nil {
		return errors.Wrap(err, "persisting session")
	}
	return nil
}

// Logout clears the identity and removes the persisted entry.
func (s *Store) Logout() error {
	s.mu.Lock()
	s.identity = nil
	s.written = true
	s.mu.Unlock()

	if err := s.storage.Remove(storageKey); err != nil && errors.Cause(err) != ErrNoValue {
		return errors.Wrap(err, "removing persisted session")
	}
	return nil
}

// Session returns a snapshot of the current session state.
func (s *Store) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := Session{Ready: s.ready}
	if s.identity != nil {
		identity := *s.identity
		sess.Identity = &identity
	}
	return sess
}
