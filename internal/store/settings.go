package store

import (
	"sync"

	"github.com/spf13/cast"
)

const settingsSlot = "settings"

// SettingsStore holds small typed runtime settings (promo banner text, open
// flag and the like) in its own slot, cached in memory.
type SettingsStore struct {
	mu     sync.Mutex
	values map[string]string
	slots  *SlotDB
}

func NewSettingsStore(slots *SlotDB) (*SettingsStore, error) {
	s := &SettingsStore{
		values: make(map[string]string),
		slots:  slots,
	}
	if _, err := slots.Load(settingsSlot, &s.values); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SettingsStore) Set(key string, value interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = cast.ToString(value)
	return s.slots.Save(settingsSlot, s.values)
}

func (s *SettingsStore) GetString(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

func (s *SettingsStore) GetInt64(key string) int64 {
	return cast.ToInt64(s.GetString(key))
}

func (s *SettingsStore) GetBool(key string) bool {
	return cast.ToBool(s.GetString(key))
}
