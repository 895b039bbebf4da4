package webapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/sessions"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/app"
	"github.com/lunargift/giftmall/internal/checkout"
)

const (
	clientCookieName = "giftmall_client"
	clientContextKey = "client_id"
)

// WebServer serves the storefront, auth and tracking-dashboard APIs.
type WebServer struct {
	app     app.AppContext
	root    *echo.Echo
	cookies *sessions.CookieStore

	mu    sync.Mutex
	flows map[string]*checkout.Flow
}

func NewWebServer(appCtx app.AppContext) *WebServer {
	cfg := appCtx.Config()

	cookies := sessions.NewCookieStore([]byte(cfg.Web.CookieSecret))
	cookies.Options.MaxAge = cfg.Web.SessionMaxAge
	cookies.Options.HttpOnly = true

	s := &WebServer{
		app:     appCtx,
		cookies: cookies,
		flows:   make(map[string]*checkout.Flow),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(s.requestLogger)
	e.Use(s.clientSession)
	s.root = e

	s.initStorefrontRouter()
	s.initCartRouter()
	s.initCheckoutRouter()
	s.initAuthRouter()
	s.initTrackingRouter()
	return s
}

// Handler exposes the route tree as an http.Handler.
func (s *WebServer) Handler() *echo.Echo {
	return s.root
}

// Start blocks serving HTTP on the configured address.
func (s *WebServer) Start() error {
	cfg := s.app.Config()
	addr := fmt.Sprintf("%s:%d", cfg.Web.Host, cfg.Web.Port)
	zap.S().Infof("web server listening on %s", addr)
	return s.root.Start(addr)
}

// requestLogger logs one line per request through the global zap logger.
func (s *WebServer) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		zap.L().Debug("http request",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Request().URL.Path),
			zap.Int("status", c.Response().Status),
			zap.Duration("elapsed", time.Since(start)),
		)
		return err
	}
}

// clientSession assigns every browser a stable client id cookie; the cart
// slot is scoped by it.
func (s *WebServer) clientSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, _ := s.cookies.Get(c.Request(), clientCookieName)
		clientID, _ := sess.Values[clientContextKey].(string)
		if clientID == "" {
			clientID = random.String(16)
			sess.Values[clientContextKey] = clientID
			if err := sess.Save(c.Request(), c.Response()); err != nil {
				zap.L().Warn("client session save failed", zap.Error(err))
			}
		}
		c.Set(clientContextKey, clientID)
		return next(c)
	}
}

func clientID(c echo.Context) string {
	id, _ := c.Get(clientContextKey).(string)
	return id
}

// dashboardGuard protects tracking routes with the identity provider's
// access token.
func (s *WebServer) dashboardGuard() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: s.app.Idp().JwtSecret(),
	})
}
