package domain

import "time"

// EventType is the closed set of tracked interaction types.
type EventType string

const (
	EventView           EventType = "view"
	EventAddToCart      EventType = "addToCart"
	EventRemoveFromCart EventType = "removeFromCart"
	EventPurchase       EventType = "purchase"
	EventSearch         EventType = "search"
)

// TrackingEvent is one append-only log entry. Gift fields are present for
// product-related types, SearchQuery only for search events.
type TrackingEvent struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	GiftID      string    `json:"gift_id,omitempty"`
	GiftName    string    `json:"gift_name,omitempty"`
	Category    Category  `json:"category,omitempty"`
	SearchQuery string    `json:"search_query,omitempty"`
	Quantity    int       `json:"quantity,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// ProductCount is one row of the top-products report.
type ProductCount struct {
	GiftID   string `json:"gift_id"`
	GiftName string `json:"gift_name"`
	Count    int    `json:"count"`
}

// CategoryCount is one row of the top-categories report.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int      `json:"count"`
}
