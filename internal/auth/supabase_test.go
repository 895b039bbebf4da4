package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargift/giftmall/internal/store"
)

const testJwtSecret = "unit-test-secret"

func openTestSlots(t *testing.T) *store.SlotDB {
	t.Helper()
	slots, err := store.OpenSlotDB(filepath.Join(t.TempDir(), "slots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = slots.Close() })
	return slots
}

func signTestToken(t *testing.T, subject string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJwtSecret))
	require.NoError(t, err)
	return signed
}

func newAuthServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "admin@example.com" || body.Password != "letmein" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error_description": "Invalid login credentials",
			})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": signTestToken(t, "user-1"),
			"token_type":   "bearer",
			"expires_in":   3600,
			"user":         map[string]string{"id": "user-1", "email": body.Email},
		})
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestSignInSuccess(t *testing.T) {
	srv := newAuthServer(t)
	p, err := NewSupabaseProvider(srv.URL, "anon", testJwtSecret, openTestSlots(t))
	require.NoError(t, err)

	var notified *Session
	p.OnChange(func(s *Session) { notified = s })

	sess, err := p.SignIn(context.Background(), "admin@example.com", "letmein")
	require.NoError(t, err)
	assert.Equal(t, "user-1", sess.User.ID)
	assert.NoError(t, p.ValidateToken(sess.AccessToken))
	assert.False(t, sess.Expired(time.Now()))

	require.NotNil(t, p.CurrentSession())
	require.NotNil(t, notified)
	assert.Equal(t, sess.AccessToken, notified.AccessToken)
}

func TestSignInBadCredentials(t *testing.T) {
	srv := newAuthServer(t)
	p, err := NewSupabaseProvider(srv.URL, "anon", testJwtSecret, openTestSlots(t))
	require.NoError(t, err)

	_, err = p.SignIn(context.Background(), "admin@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
	assert.Nil(t, p.CurrentSession())
}

func TestSignOutClearsSession(t *testing.T) {
	srv := newAuthServer(t)
	slots := openTestSlots(t)
	p, err := NewSupabaseProvider(srv.URL, "anon", testJwtSecret, slots)
	require.NoError(t, err)

	_, err = p.SignIn(context.Background(), "admin@example.com", "letmein")
	require.NoError(t, err)

	var notified []*Session
	p.OnChange(func(s *Session) { notified = append(notified, s) })

	require.NoError(t, p.SignOut(context.Background()))
	assert.Nil(t, p.CurrentSession())
	require.Len(t, notified, 1)
	assert.Nil(t, notified[0])
}

func TestSessionRestoredAfterRestart(t *testing.T) {
	srv := newAuthServer(t)
	slots := openTestSlots(t)

	p, err := NewSupabaseProvider(srv.URL, "anon", testJwtSecret, slots)
	require.NoError(t, err)
	sess, err := p.SignIn(context.Background(), "admin@example.com", "letmein")
	require.NoError(t, err)

	restarted, err := NewSupabaseProvider(srv.URL, "anon", testJwtSecret, slots)
	require.NoError(t, err)
	restored := restarted.CurrentSession()
	require.NotNil(t, restored)
	assert.Equal(t, sess.AccessToken, restored.AccessToken)
	assert.Equal(t, sess.User, restored.User)
}

func TestValidateTokenRejectsForgedToken(t *testing.T) {
	srv := newAuthServer(t)
	p, err := NewSupabaseProvider(srv.URL, "anon", testJwtSecret, openTestSlots(t))
	require.NoError(t, err)

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	signed, err := forged.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	assert.Error(t, p.ValidateToken(signed))
}
