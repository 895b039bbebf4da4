package auth

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/guonaihong/gout"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/store"
)

const sessionSlot = "auth"

// ErrInvalidCredentials is returned when the provider rejects the login.
var ErrInvalidCredentials = errors.New("invalid email or password")

// SupabaseProvider talks to a Supabase-style auth REST API
// (password-grant token endpoint, logout, user). The current session
// persists in its own slot and is restored at startup so a restart does not
// log the operator out.
type SupabaseProvider struct {
	baseURL   string
	anonKey   string
	jwtSecret []byte

	mu        sync.Mutex
	session   *Session
	callbacks []func(*Session)

	slots *store.SlotDB
}

func NewSupabaseProvider(baseURL, anonKey, jwtSecret string, slots *store.SlotDB) (*SupabaseProvider, error) {
	p := &SupabaseProvider{
		baseURL:   baseURL,
		anonKey:   anonKey,
		jwtSecret: []byte(jwtSecret),
		slots:     slots,
	}
	var restored Session
	found, err := slots.Load(sessionSlot, &restored)
	if err != nil {
		return nil, err
	}
	if found && !restored.Expired(time.Now()) {
		p.session = &restored
	}
	return p, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	User        User   `json:"user"`
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (e errorResponse) message() string {
	switch {
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Msg != "":
		return e.Msg
	default:
		return e.Error
	}
}

// SignIn exchanges credentials for a session at the provider's password
// grant endpoint.
func (p *SupabaseProvider) SignIn(ctx context.Context, email, password string) (*Session, error) {
	var (
		resp    tokenResponse
		errBody errorResponse
		code    int
	)
	err := gout.POST(p.baseURL+"/auth/v1/token?grant_type=password").
		WithContext(ctx).
		SetHeader(gout.H{"apikey": p.anonKey}).
		SetJSON(gout.H{"email": email, "password": password}).
		Code(&code).
		Callback(func(c *gout.Context) error {
			if c.Code == http.StatusOK {
				c.BindJSON(&resp)
			} else {
				c.BindJSON(&errBody)
			}
			return nil
		}).
		Do()
	if err != nil {
		return nil, errors.Wrap(err, "identity provider unreachable")
	}
	if code != http.StatusOK {
		zap.L().Warn("sign-in rejected",
			zap.Int("status", code), zap.String("email", email))
		if code == http.StatusBadRequest || code == http.StatusUnauthorized {
			if msg := errBody.message(); msg != "" {
				return nil, errors.New(msg)
			}
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Errorf("identity provider error: status %d", code)
	}

	sess := &Session{
		AccessToken: resp.AccessToken,
		TokenType:   resp.TokenType,
		ExpiresAt:   time.Now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		User:        resp.User,
	}
	p.setSession(sess)
	return sess, nil
}

// SignOut revokes the current session at the provider and clears it
// locally. Clearing always happens, even when the remote call fails.
func (p *SupabaseProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	sess := p.session
	p.mu.Unlock()
	if sess == nil {
		return nil
	}
	var code int
	err := gout.POST(p.baseURL + "/auth/v1/logout").
		WithContext(ctx).
		SetHeader(gout.H{
			"apikey":        p.anonKey,
			"Authorization": "Bearer " + sess.AccessToken,
		}).
		Code(&code).
		Do()
	if err != nil {
		zap.L().Warn("provider logout failed", zap.Error(err))
	}
	p.setSession(nil)
	return nil
}

// CurrentSession returns the live session, or nil when absent or expired.
func (p *SupabaseProvider) CurrentSession() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil || p.session.Expired(time.Now()) {
		return nil
	}
	return p.session
}

// OnChange registers a callback invoked on every session change with the
// new session (nil on sign-out).
func (p *SupabaseProvider) OnChange(fn func(*Session)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callbacks = append(p.callbacks, fn)
}

// ValidateToken checks an access token signature and expiry against the
// provider's signing secret.
func (p *SupabaseProvider) ValidateToken(tokenString string) error {
	_, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return p.jwtSecret, nil
	})
	return errors.Wrap(err, "invalid access token")
}

// JwtSecret exposes the signing secret for route middleware.
func (p *SupabaseProvider) JwtSecret() []byte {
	return p.jwtSecret
}

func (p *SupabaseProvider) setSession(sess *Session) {
	p.mu.Lock()
	p.session = sess
	callbacks := make([]func(*Session), len(p.callbacks))
	copy(callbacks, p.callbacks)
	p.mu.Unlock()

	if sess == nil {
		if err := p.slots.Delete(sessionSlot); err != nil {
			zap.L().Error("clear session slot failed", zap.Error(err))
		}
	} else {
		if err := p.slots.Save(sessionSlot, sess); err != nil {
			zap.L().Error("persist session slot failed", zap.Error(err))
		}
	}
	for _, fn := range callbacks {
		fn(sess)
	}
}
