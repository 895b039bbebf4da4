package app

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/auth"
	"github.com/lunargift/giftmall/internal/domain"
	"github.com/lunargift/giftmall/internal/store"
)

// subscribeEventLog wires debug logging onto the notification bus.
func (a *Application) subscribeEventLog() {
	_ = a.bus.Subscribe(store.TopicTrackingEvent, func(ev domain.TrackingEvent) {
		zap.L().Debug("tracking event",
			zap.String("id", ev.ID),
			zap.String("type", string(ev.Type)),
			zap.String("gift_id", ev.GiftID),
		)
	})
	_ = a.bus.Subscribe(store.TopicCartChanged, func(clientID string) {
		zap.L().Debug("cart changed", zap.String("client_id", clientID))
	})
	_ = a.bus.Subscribe(auth.TopicAuthChanged, func(sess *auth.Session) {
		if sess == nil {
			zap.L().Info("operator signed out")
		} else {
			zap.L().Info("operator signed in", zap.String("email", sess.User.Email))
		}
	})
}

func (a *Application) initJob() {
	a.sched = cron.New()

	_, err := a.sched.AddFunc(a.appConfig.Job.CheckpointCron, func() {
		if err := a.slots.Sync(); err != nil {
			zap.L().Error("slot checkpoint failed", zap.Error(err))
		}
	})
	if err != nil {
		zap.S().Errorf("register checkpoint job failed: %v", err)
	}

	_, err = a.sched.AddFunc(a.appConfig.Job.SummaryCron, a.logDailySummary)
	if err != nil {
		zap.S().Errorf("register summary job failed: %v", err)
	}

	a.sched.Start()
}

// logDailySummary emits one aggregate line over the whole tracking log.
func (a *Application) logDailySummary() {
	zap.L().Info("promo summary",
		zap.Int("views", a.tracking.ViewCount()),
		zap.Int("cart_adds", a.tracking.AddToCartCount()),
		zap.Int("orders", a.tracking.PurchaseCount()),
		zap.Int64("revenue", a.tracking.TotalRevenue()),
	)
}
