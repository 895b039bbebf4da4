package store

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var slotBucket = []byte("slots")

// SlotDB persists named state slots in a local bbolt file. Each slot is one
// JSON payload that round-trips without field loss; timestamps serialize as
// RFC3339 and restore to comparable time.Time values.
type SlotDB struct {
	db *bolt.DB
}

// OpenSlotDB opens (or creates) the slot database file.
func OpenSlotDB(path string) (*SlotDB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "open slot database")
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "create slot bucket")
	}
	return &SlotDB{db: db}, nil
}

// Save serializes v into the named slot, replacing any previous payload.
func (s *SlotDB) Save(slot string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "marshal slot %s", slot)
	}
	err = s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Put([]byte(slot), data)
	})
	return errors.Wrapf(err, "save slot %s", slot)
}

// Load restores the named slot into v. Returns false when the slot has
// never been written.
func (s *SlotDB) Load(slot string, v interface{}) (bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if raw := tx.Bucket(slotBucket).Get([]byte(slot)); raw != nil {
			data = make([]byte, len(raw))
			copy(data, raw)
		}
		return nil
	})
	if err != nil {
		return false, errors.Wrapf(err, "load slot %s", slot)
	}
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, errors.Wrapf(err, "unmarshal slot %s", slot)
	}
	return true, nil
}

// Delete removes the named slot. Deleting a missing slot is a no-op.
func (s *SlotDB) Delete(slot string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Delete([]byte(slot))
	})
	return errors.Wrapf(err, "delete slot %s", slot)
}

// Slots lists the names of all written slots.
func (s *SlotDB) Slots() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).ForEach(func(k, _ []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	return names, err
}

// Reset drops every slot.
func (s *SlotDB) Reset() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(slotBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(slotBucket)
		return err
	})
}

// Sync flushes the database file.
func (s *SlotDB) Sync() error {
	return s.db.Sync()
}

func (s *SlotDB) Close() error {
	return s.db.Close()
}
