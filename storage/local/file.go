// Package localstore provides the client-device persistence slots backing
// the session store.
package localstore

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/session"
)

// FileStorage persists values as a JSON object in a single file. It is
// best-effort local state, not a security boundary.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

var _ session.Storage = (*FileStorage)(nil) // interface compliance check

func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (fs *FileStorage) Persist(key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	values[key] = json.RawMessage(value)
	return fs.save(values)
}

func (fs *FileStorage) Read(key string) ([]byte, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return nil, err
	}
	value, ok := values[key]
	if !ok {
		return nil, session.ErrNoValue
	}
	return value, nil
}

func (fs *FileStorage) Remove(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	values, err := fs.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return fs.save(values)
}

func (fs *FileStorage) load() (map[string]json.RawMessage, error) {
	values := make(map[string]json.RawMessage)

	data, err := ioutil.ReadFile(fs.path)
	if err != nil {
		if os.IsNotExist(err) {
			return values, nil
		}
		return nil, errors.Wrap(err, "reading storage file")
	}
	if len(data) == 0 {
		return values, nil
	}
	if err = json.Unmarshal(data, &values); err != nil {
		return nil, errors.Wrap(err, "decoding storage file")
	}
	return values, nil
}

func (fs *FileStorage) save(values map[string]json.RawMessage) error {
	data, err := json.Marshal(values)
	if err != nil {
		return errors.Wrap(err, "encoding storage file")
	}
	if err = os.MkdirAll(filepath.Dir(fs.path), 0700); err != nil {
		return errors.Wrap(err, "creating storage dir")
	}
	if err = ioutil.WriteFile(fs.path, data, 0600); err != nil {
		return errors.Wrap(err, "writing storage file")
	}
	return nil
}
