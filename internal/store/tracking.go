package store

import (
	"sort"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/domain"
)

// TopicTrackingEvent carries every appended domain.TrackingEvent.
const TopicTrackingEvent = "tracking.event"

const (
	trackingSlot     = "tracking"
	maxRecentQueries = 20
)

// trackingState is the persisted payload of the tracking slot.
type trackingState struct {
	Events   []domain.TrackingEvent `json:"events"`
	Orders   []domain.Order         `json:"orders"`
	Searches []string               `json:"search_queries"`
}

// TrackingStore is the append-only log of interaction events plus the order
// log. Events and orders are never mutated or deleted; aggregate queries
// re-scan the log on every call, which is fine at promo event volumes.
type TrackingStore struct {
	mu    sync.Mutex
	state trackingState
	slots *SlotDB
	bus   EventBus.Bus
	node  *snowflake.Node
	clock func() time.Time
}

// NewTrackingStore opens the site-wide tracking store, restoring any
// persisted log.
func NewTrackingStore(slots *SlotDB, bus EventBus.Bus) (*TrackingStore, error) {
	node, err := snowflake.NewNode(1)
	if err != nil {
		return nil, errors.Wrap(err, "init snowflake node")
	}
	s := &TrackingStore{
		slots: slots,
		bus:   bus,
		node:  node,
		clock: time.Now,
	}
	if _, err := slots.Load(trackingSlot, &s.state); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *TrackingStore) nextID() string {
	return s.node.Generate().String()
}

// RecordView appends one view event for the gift.
func (s *TrackingStore) RecordView(giftID, giftName string, category domain.Category) error {
	return s.append(domain.TrackingEvent{
		Type:     domain.EventView,
		GiftID:   giftID,
		GiftName: giftName,
		Category: category,
	})
}

// RecordAddToCart appends one add-to-cart event for the gift.
func (s *TrackingStore) RecordAddToCart(giftID, giftName string, category domain.Category, quantity int) error {
	return s.append(domain.TrackingEvent{
		Type:     domain.EventAddToCart,
		GiftID:   giftID,
		GiftName: giftName,
		Category: category,
		Quantity: quantity,
	})
}

// RecordRemoveFromCart appends one remove-from-cart event for the gift.
func (s *TrackingStore) RecordRemoveFromCart(giftID, giftName string, category domain.Category) error {
	return s.append(domain.TrackingEvent{
		Type:     domain.EventRemoveFromCart,
		GiftID:   giftID,
		GiftName: giftName,
		Category: category,
	})
}

// RecordSearch appends one search event and moves the query to the front of
// the deduplicated recent-searches list, capped at 20 entries.
func (s *TrackingStore) RecordSearch(query string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev := domain.TrackingEvent{
		ID:          s.nextID(),
		Type:        domain.EventSearch,
		SearchQuery: query,
		Timestamp:   s.clock(),
	}
	s.state.Events = append(s.state.Events, ev)

	recent := make([]string, 0, len(s.state.Searches)+1)
	recent = append(recent, query)
	for _, q := range s.state.Searches {
		if q != query {
			recent = append(recent, q)
		}
	}
	if len(recent) > maxRecentQueries {
		recent = recent[:maxRecentQueries]
	}
	s.state.Searches = recent

	return s.persist(ev)
}

// RecordPurchase appends one purchase event per line item, then appends one
// Order record holding a snapshot copy of the items.
func (s *TrackingStore) RecordPurchase(items []domain.CartItem, recipient domain.RecipientInfo, totalAmount int64) (domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock()

	evs := make([]domain.TrackingEvent, 0, len(items))
	for _, it := range items {
		ev := domain.TrackingEvent{
			ID:        s.nextID(),
			Type:      domain.EventPurchase,
			GiftID:    it.Gift.ID,
			GiftName:  it.Gift.Name,
			Category:  it.Gift.Category,
			Quantity:  it.Quantity,
			Timestamp: now,
		}
		s.state.Events = append(s.state.Events, ev)
		evs = append(evs, ev)
	}

	snapshot := make([]domain.CartItem, len(items))
	copy(snapshot, items)
	order := domain.Order{
		ID:          s.nextID(),
		Items:       snapshot,
		Recipient:   recipient,
		TotalAmount: totalAmount,
		CreatedAt:   now,
	}
	s.state.Orders = append(s.state.Orders, order)

	return order, s.persist(evs...)
}

// append assigns id and timestamp, appends and persists. Used by the
// single-event recorders.
func (s *TrackingStore) append(ev domain.TrackingEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ev.ID = s.nextID()
	ev.Timestamp = s.clock()
	s.state.Events = append(s.state.Events, ev)
	return s.persist(ev)
}

// persist saves the whole slot and publishes the appended events.
// Callers hold s.mu.
func (s *TrackingStore) persist(evs ...domain.TrackingEvent) error {
	err := s.slots.Save(trackingSlot, &s.state)
	if err != nil {
		zap.L().Error("tracking persist failed", zap.Error(err))
	}
	if s.bus != nil {
		for _, ev := range evs {
			s.bus.Publish(TopicTrackingEvent, ev)
		}
	}
	return err
}

// ViewCount counts view events.
func (s *TrackingStore) ViewCount() int {
	return s.countByType(domain.EventView)
}

// AddToCartCount counts add-to-cart events.
func (s *TrackingStore) AddToCartCount() int {
	return s.countByType(domain.EventAddToCart)
}

func (s *TrackingStore) countByType(t domain.EventType) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, ev := range s.state.Events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// PurchaseCount counts completed orders, not purchase events; one order may
// correspond to several purchase events.
func (s *TrackingStore) PurchaseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.state.Orders)
}

// TotalRevenue sums order totals.
func (s *TrackingStore) TotalRevenue() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, o := range s.state.Orders {
		total += o.TotalAmount
	}
	return total
}

// OrderTotals returns each order's total amount in log order.
func (s *TrackingStore) OrderTotals() []float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]float64, 0, len(s.state.Orders))
	for _, o := range s.state.Orders {
		out = append(out, float64(o.TotalAmount))
	}
	return out
}

// TopProducts groups view events by gift id and returns the most viewed
// gifts, at most limit entries, sorted by descending count. Ties keep
// first-encountered order.
func (s *TrackingStore) TopProducts(limit int) []domain.ProductCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := map[string]int{}
	var counts []domain.ProductCount
	for _, ev := range s.state.Events {
		if ev.Type != domain.EventView || ev.GiftID == "" {
			continue
		}
		if i, ok := index[ev.GiftID]; ok {
			counts[i].Count++
			counts[i].GiftName = ev.GiftName
			continue
		}
		index[ev.GiftID] = len(counts)
		counts = append(counts, domain.ProductCount{
			GiftID:   ev.GiftID,
			GiftName: ev.GiftName,
			Count:    1,
		})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if limit > 0 && len(counts) > limit {
		counts = counts[:limit]
	}
	return counts
}

// TopCategories groups every event carrying a category, regardless of type,
// and returns counts sorted descending. No limit.
func (s *TrackingStore) TopCategories() []domain.CategoryCount {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := map[domain.Category]int{}
	var counts []domain.CategoryCount
	for _, ev := range s.state.Events {
		if ev.Category == "" {
			continue
		}
		if i, ok := index[ev.Category]; ok {
			counts[i].Count++
			continue
		}
		index[ev.Category] = len(counts)
		counts = append(counts, domain.CategoryCount{Category: ev.Category, Count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

// RecentSearches returns up to limit queries, most recent first.
func (s *TrackingStore) RecentSearches(limit int) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.state.Searches)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]string, n)
	copy(out, s.state.Searches[:n])
	return out
}

// RecentOrders returns up to limit orders, newest first by creation time.
func (s *TrackingStore) RecentOrders(limit int) []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.state.Orders))
	copy(out, s.state.Orders)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// AllOrders returns every order in log order.
func (s *TrackingStore) AllOrders() []domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, len(s.state.Orders))
	copy(out, s.state.Orders)
	return out
}

// RecentEvents returns up to limit events, newest first by timestamp.
func (s *TrackingStore) RecentEvents(limit int) []domain.TrackingEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.TrackingEvent, len(s.state.Events))
	copy(out, s.state.Events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
