package store

import (
	"encoding/json"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/Shrezz2001/dr-tara-core-api/internal/catalog"
)

var (
	catalogBucket = []byte("catalog")
	snapshotKey   = []byte("snapshot")
)

// BoltStore persists the last good catalog snapshot so the matcher has product
// context during the warm-up window after a restart.
type BoltStore struct {
	db *bolt.DB
}

func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(catalogBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog bucket: %w", err)
	}

	return &BoltStore{db: db}, nil
}

func (s *BoltStore) SaveSnapshot(products []catalog.Product) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(products)
		if err != nil {
			return err
		}
		return tx.Bucket(catalogBucket).Put(snapshotKey, data)
	})
}

func (s *BoltStore) LoadSnapshot() ([]catalog.Product, error) {
	var products []catalog.Product
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(catalogBucket).Get(snapshotKey)
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &products)
	})
	return products, err
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}
