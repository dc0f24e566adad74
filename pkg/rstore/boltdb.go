package rstore

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var bucketSnapshots = []byte("snapshots")

// BoltSnapshotStore persists opaque JSON-encoded snapshot records to a
// single bbolt file. Registered as a Resource, it becomes available to
// any Effect or event handler via runtime.Resource[*BoltSnapshotStore].
type BoltSnapshotStore struct {
	db *bolt.DB
}

// NewBoltSnapshotStore opens (creating if absent) a bbolt database at
// dataDir/snapshots.db.
func NewBoltSnapshotStore(dataDir string) (*BoltSnapshotStore, error) {
	path := filepath.Join(dataDir, "snapshots.db")
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("rstore: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSnapshots)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("rstore: create bucket: %w", err)
	}
	return &BoltSnapshotStore{db: db}, nil
}

// Close closes the underlying database file.
func (s *BoltSnapshotStore) Close() error { return s.db.Close() }

// Put persists snapshot under key, JSON-encoding it. An empty key gets a
// generated UUID, returned as the second value.
func (s *BoltSnapshotStore) Put(key string, snapshot any) (string, error) {
	if key == "" {
		key = uuid.NewString()
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("rstore: marshal snapshot: %w", err)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Put([]byte(key), data)
	})
	if err != nil {
		return "", fmt.Errorf("rstore: put %s: %w", key, err)
	}
	return key, nil
}

// Get retrieves the raw JSON stored under key, for the caller to unmarshal
// into its own Model or snapshot type.
func (s *BoltSnapshotStore) Get(key string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bucketSnapshots).Get([]byte(key))
		if v == nil {
			return fmt.Errorf("rstore: no snapshot for key %s", key)
		}
		data = append(data, v...)
		return nil
	})
	return data, err
}

// List returns every key currently stored, in bbolt's byte-sorted order.
func (s *BoltSnapshotStore) List() ([]string, error) {
	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Delete removes the snapshot stored under key, if any.
func (s *BoltSnapshotStore) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSnapshots).Delete([]byte(key))
	})
}
