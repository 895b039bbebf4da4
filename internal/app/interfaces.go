package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/lunargift/giftmall/config"
	"github.com/lunargift/giftmall/internal/auth"
	"github.com/lunargift/giftmall/internal/catalog"
	"github.com/lunargift/giftmall/internal/store"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// CatalogProvider provides the fixed gift catalog
type CatalogProvider interface {
	Catalog() *catalog.Catalog
}

// StoreProvider provides the persisted state stores
type StoreProvider interface {
	Slots() *store.SlotDB
	Carts() *store.CartManager
	Tracking() *store.TrackingStore
	Settings() *store.SettingsStore
}

// AuthProvider provides the external identity provider boundary
type AuthProvider interface {
	Idp() *auth.SupabaseProvider
}

// BusProvider provides the in-process notification bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// AppContext combines all provider interfaces for full application context.
// Services should depend on specific providers or this combined interface.
type AppContext interface {
	ConfigProvider
	CatalogProvider
	StoreProvider
	AuthProvider
	BusProvider
	SchedulerProvider

	// InitDb drops every persisted slot
	InitDb() error
}
