package tokenstore

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	sessionBucket = []byte("session")
	tokenKey      = []byte("access_token")
)

// BoltStore persists the bearer token in a BoltDB file. The file is opened
// per operation so several CLI invocations never hold the lock for long.
type BoltStore struct {
	path    string
	timeout time.Duration
}

// NewBoltStore returns a store backed by the file at path.
func NewBoltStore(path string) *BoltStore {
	return &BoltStore{path: path, timeout: time.Second}
}

// Path returns the backing file.
func (s *BoltStore) Path() string {
	return s.path
}

func (s *BoltStore) open() (*bolt.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}
	db, err := bolt.Open(s.path, 0o600, &bolt.Options{Timeout: s.timeout})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return db, nil
}

// Load returns the stored token, or "" when none is stored.
func (s *BoltStore) Load() (string, error) {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return "", nil
	}
	db, err := s.open()
	if err != nil {
		return "", err
	}
	defer func() { _ = db.Close() }()

	var token string
	err = db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		token = string(b.Get(tokenKey))
		return nil
	})
	return token, err
}

// Save stores token, replacing any previous one.
func (s *BoltStore) Save(token string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(sessionBucket)
		if err != nil {
			return err
		}
		return b.Put(tokenKey, []byte(token))
	})
}

// Clear removes the stored token.
func (s *BoltStore) Clear() error {
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil
	}
	db, err := s.open()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(sessionBucket)
		if b == nil {
			return nil
		}
		return b.Delete(tokenKey)
	})
}
