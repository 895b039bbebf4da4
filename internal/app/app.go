package app

import (
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lunargift/giftmall/config"
	"github.com/lunargift/giftmall/internal/auth"
	"github.com/lunargift/giftmall/internal/catalog"
	"github.com/lunargift/giftmall/internal/store"
)

// Application owns the shared runtime: configuration, logger, slot
// database, stores, notification bus, identity provider and scheduler.
// It is constructed once and passed by reference to all consumers.
type Application struct {
	appConfig *config.AppConfig
	slots     *store.SlotDB
	bus       EventBus.Bus
	carts     *store.CartManager
	tracking  *store.TrackingStore
	settings  *store.SettingsStore
	giftshelf *catalog.Catalog
	idp       *auth.SupabaseProvider
	sched     *cron.Cron
}

// Ensure Application implements all interfaces
var _ AppContext = (*Application)(nil)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig       { return a.appConfig }
func (a *Application) Catalog() *catalog.Catalog       { return a.giftshelf }
func (a *Application) Slots() *store.SlotDB            { return a.slots }
func (a *Application) Carts() *store.CartManager       { return a.carts }
func (a *Application) Tracking() *store.TrackingStore  { return a.tracking }
func (a *Application) Settings() *store.SettingsStore  { return a.settings }
func (a *Application) Idp() *auth.SupabaseProvider     { return a.idp }
func (a *Application) Bus() EventBus.Bus               { return a.bus }
func (a *Application) Scheduler() *cron.Cron           { return a.sched }

// Init brings up logging, opens the slot database and wires every store.
func (a *Application) Init() error {
	cfg := a.appConfig

	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger()

	if err := cfg.InitDirs(); err != nil {
		return errors.Wrap(err, "create workdir")
	}

	a.slots, err = store.OpenSlotDB(filepath.Join(cfg.System.Workdir, "data", "giftmall.db"))
	if err != nil {
		return err
	}
	zap.S().Infof("slot database opened in %s", cfg.System.Workdir)

	a.bus = EventBus.New()
	a.carts = store.NewCartManager(a.slots, a.bus)
	a.tracking, err = store.NewTrackingStore(a.slots, a.bus)
	if err != nil {
		return err
	}
	a.settings, err = store.NewSettingsStore(a.slots)
	if err != nil {
		return err
	}
	a.giftshelf = catalog.Default()

	a.idp, err = auth.NewSupabaseProvider(
		cfg.Auth.ProviderURL, cfg.Auth.AnonKey, cfg.Auth.JwtSecret, a.slots)
	if err != nil {
		return err
	}
	a.idp.OnChange(func(sess *auth.Session) {
		a.bus.Publish(auth.TopicAuthChanged, sess)
	})

	a.subscribeEventLog()
	a.initJob()
	return nil
}

// initLogger configures the global zap logger, with lumberjack rotation
// when file output is enabled.
func (a *Application) initLogger() {
	cfg := a.appConfig
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	zapConfig.OutputPaths = []string{"stdout"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}
		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}
	zap.ReplaceGlobals(logger)
}

// InitDb drops every persisted slot (carts, tracking log, session,
// settings).
func (a *Application) InitDb() error {
	return a.slots.Reset()
}

// Release releases application resources.
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.slots != nil {
		_ = a.slots.Close()
	}
	_ = zap.L().Sync()
}
