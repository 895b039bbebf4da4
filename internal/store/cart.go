package store

import (
	"sync"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/domain"
)

// TopicCartChanged carries the owning client id of the cart that changed.
const TopicCartChanged = "cart.changed"

// CartStore holds one client's cart lines. Lines are unique per gift id;
// adding an already-present gift merges into the existing line. Every
// mutation persists the new state to the owning slot and publishes a change
// notification. Mutations apply in memory first; a failed persist is
// returned to the caller but never rolls the memory state back.
type CartStore struct {
	mu       sync.Mutex
	clientID string
	items    []domain.CartItem
	slots    *SlotDB
	bus      EventBus.Bus
}

func cartSlotName(clientID string) string {
	return "cart:" + clientID
}

// NewCartStore opens the cart for the given client, restoring any
// previously persisted lines.
func NewCartStore(clientID string, slots *SlotDB, bus EventBus.Bus) (*CartStore, error) {
	s := &CartStore{clientID: clientID, slots: slots, bus: bus}
	if _, err := slots.Load(cartSlotName(clientID), &s.items); err != nil {
		return nil, err
	}
	return s, nil
}

// ClientID returns the owning client id.
func (s *CartStore) ClientID() string {
	return s.clientID
}

// AddItem merges quantity into an existing line for the gift, or appends a
// new line. Never fails on cart state itself.
func (s *CartStore) AddItem(gift domain.Gift, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := false
	for i := range s.items {
		if s.items[i].Gift.ID == gift.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.CartItem{Gift: gift, Quantity: quantity})
	}
	return s.persist()
}

// RemoveItem deletes the line for the gift id; no-op when absent.
func (s *CartStore) RemoveItem(giftID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Gift.ID == giftID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return s.persist()
		}
	}
	return nil
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// A quantity of zero or less removes the line, exactly like RemoveItem.
// No-op when the gift is not in the cart.
func (s *CartStore) UpdateQuantity(giftID string, quantity int) error {
	if quantity <= 0 {
		return s.RemoveItem(giftID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].Gift.ID == giftID {
			s.items[i].Quantity = quantity
			return s.persist()
		}
	}
	return nil
}

// Clear empties the cart unconditionally.
func (s *CartStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persist()
}

// Items returns a copy of the current lines.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

// IsEmpty reports whether the cart has no lines.
func (s *CartStore) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) == 0
}

// TotalItemCount sums all line quantities.
func (s *CartStore) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, it := range s.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums price*quantity over all lines. The promotion zero-prices
// every gift, but the computation stays generic.
func (s *CartStore) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, it := range s.items {
		total += it.Gift.Price * int64(it.Quantity)
	}
	return total
}

// persist writes the current lines to the slot. Callers hold s.mu.
func (s *CartStore) persist() error {
	err := s.slots.Save(cartSlotName(s.clientID), s.items)
	if err != nil {
		zap.L().Error("cart persist failed",
			zap.String("client_id", s.clientID), zap.Error(err))
	}
	if s.bus != nil {
		s.bus.Publish(TopicCartChanged, s.clientID)
	}
	return err
}

// CartManager hands out per-client cart stores, caching open ones.
type CartManager struct {
	mu    sync.Mutex
	carts map[string]*CartStore
	slots *SlotDB
	bus   EventBus.Bus
}

func NewCartManager(slots *SlotDB, bus EventBus.Bus) *CartManager {
	return &CartManager{
		carts: make(map[string]*CartStore),
		slots: slots,
		bus:   bus,
	}
}

// Cart returns the cart store owned by the client, opening it on first use.
func (m *CartManager) Cart(clientID string) (*CartStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[clientID]; ok {
		return c, nil
	}
	c, err := NewCartStore(clientID, m.slots, m.bus)
	if err != nil {
		return nil, err
	}
	m.carts[clientID] = c
	return c, nil
}
