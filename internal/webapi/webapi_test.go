package webapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunargift/giftmall/config"
	"github.com/lunargift/giftmall/internal/app"
)

const testJwtSecret = "webapi-test-secret"

// testClient replays the client id cookie across requests, like a browser.
type testClient struct {
	t       *testing.T
	server  *WebServer
	cookies []*http.Cookie
	token   string
}

func newTestClient(t *testing.T) (*testClient, *app.Application) {
	t.Helper()

	cfg := config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	cfg.Logger.Mode = "development"
	cfg.Auth.JwtSecret = testJwtSecret
	cfg.Web.CookieSecret = "test-cookie-secret"

	application := app.NewApplication(&cfg)
	require.NoError(t, application.Init())
	t.Cleanup(application.Release)

	return &testClient{t: t, server: NewWebServer(application)}, application
}

func (tc *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	tc.t.Helper()
	var reader *strings.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(tc.t, err)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echoHeaderContentType, "application/json")
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}
	if tc.token != "" {
		req.Header.Set("Authorization", "Bearer "+tc.token)
	}
	rec := httptest.NewRecorder()
	tc.server.Handler().ServeHTTP(rec, req)
	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		tc.cookies = cookies
	}
	return rec
}

const echoHeaderContentType = "Content-Type"

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func signDashboardToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "operator",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJwtSecret))
	require.NoError(t, err)
	return signed
}

func TestListGifts(t *testing.T) {
	tc, application := newTestClient(t)

	rec := tc.do(http.MethodGet, "/api/gifts?perPage=100", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeData(t, rec)
	assert.EqualValues(t, len(application.Catalog().All()), body["total"])

	rec = tc.do(http.MethodGet, "/api/gifts?category=과일", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body = decodeData(t, rec)
	assert.EqualValues(t, 3, body["total"])
}

func TestSearchRecordsQuery(t *testing.T) {
	tc, application := newTestClient(t)

	rec := tc.do(http.MethodGet, "/api/gifts?q=홍삼", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"홍삼"}, application.Tracking().RecentSearches(10))
}

func TestGiftDetailRecordsView(t *testing.T) {
	tc, application := newTestClient(t)

	rec := tc.do(http.MethodGet, "/api/gifts/beef-1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, application.Tracking().ViewCount())

	rec = tc.do(http.MethodGet, "/api/gifts/no-such", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, application.Tracking().ViewCount())
}

func TestCartFlow(t *testing.T) {
	tc, application := newTestClient(t)

	rec := tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"gift_id": "beef-1", "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"gift_id": "beef-1", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeData(t, rec)
	data := body["data"].(map[string]interface{})
	assert.EqualValues(t, 3, data["total_items"])
	assert.Len(t, data["items"], 1)

	assert.Equal(t, 2, application.Tracking().AddToCartCount())

	// unknown gift rejected
	rec = tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"gift_id": "ghost"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// absolute quantity update
	rec = tc.do(http.MethodPut, "/api/cart/items/beef-1", map[string]interface{}{"quantity": 5})
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 5, data["total_items"])

	// zero quantity removes the line
	rec = tc.do(http.MethodPut, "/api/cart/items/beef-1", map[string]interface{}{"quantity": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeData(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 0, data["total_items"])
}

func TestCheckoutFlow(t *testing.T) {
	tc, application := newTestClient(t)

	// empty cart redirects back to the cart view
	rec := tc.do(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "/cart", decodeData(t, rec)["redirect"])

	rec = tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"gift_id": "beef-1", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = tc.do(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// blank recipient name rejected, no order created
	rec = tc.do(http.MethodPost, "/api/checkout/submit", map[string]interface{}{
		"name": "  ", "phone": "010-1234-5678", "address": "서울시",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, application.Tracking().PurchaseCount())

	rec = tc.do(http.MethodPost, "/api/checkout/submit", map[string]interface{}{
		"name": "김영희", "phone": "010-1234-5678", "address": "서울시 마포구",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, application.Tracking().PurchaseCount())

	// cart cleared by the successful submit
	rec = tc.do(http.MethodGet, "/api/cart", nil)
	data := decodeData(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 0, data["total_items"])

	// flow is gone after completion; purchasing again needs a fresh checkout
	rec = tc.do(http.MethodPost, "/api/checkout/submit", map[string]interface{}{
		"name": "김영희", "phone": "010-1234-5678", "address": "서울시 마포구",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	errBody := decodeData(t, rec)["error"].(map[string]interface{})
	assert.Equal(t, "NO_CHECKOUT", errBody["code"])
	assert.Equal(t, 1, application.Tracking().PurchaseCount())
}

func TestCheckoutSubmitAfterCartCleared(t *testing.T) {
	tc, application := newTestClient(t)

	rec := tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"gift_id": "beef-1", "quantity": 1})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = tc.do(http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// clear the cart out from under the open checkout
	rec = tc.do(http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = tc.do(http.MethodPost, "/api/checkout/submit", map[string]interface{}{
		"name": "김영희", "phone": "010-1234-5678", "address": "서울시 마포구",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	body := decodeData(t, rec)
	assert.Equal(t, "/cart", body["redirect"])
	assert.Equal(t, 0, application.Tracking().PurchaseCount())
	assert.Empty(t, application.Tracking().RecentOrders(0))
}

func TestDashboardRequiresToken(t *testing.T) {
	tc, _ := newTestClient(t)

	rec := tc.do(http.MethodGet, "/api/tracking/summary", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	tc.token = "not-a-token"
	rec = tc.do(http.MethodGet, "/api/tracking/summary", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDashboardSummaryAndReports(t *testing.T) {
	tc, application := newTestClient(t)

	tc.do(http.MethodGet, "/api/gifts/beef-1", nil)
	tc.do(http.MethodGet, "/api/gifts/beef-1", nil)
	tc.do(http.MethodGet, "/api/gifts/fruit-1", nil)
	tc.do(http.MethodPost, "/api/cart/items", map[string]interface{}{"gift_id": "beef-1", "quantity": 1})
	tc.do(http.MethodPost, "/api/checkout", nil)
	tc.do(http.MethodPost, "/api/checkout/submit", map[string]interface{}{
		"name": "김영희", "phone": "010", "address": "서울",
	})
	require.Equal(t, 1, application.Tracking().PurchaseCount())

	tc.token = signDashboardToken(t)

	rec := tc.do(http.MethodGet, "/api/tracking/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeData(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 3, data["views"])
	assert.EqualValues(t, 1, data["purchases"])
	assert.EqualValues(t, 0, data["avg_order_value"])

	rec = tc.do(http.MethodGet, "/api/tracking/top-products", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decodeData(t, rec)["data"].([]interface{})
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "beef-1", first["gift_id"])
	assert.EqualValues(t, 2, first["count"])

	rec = tc.do(http.MethodGet, "/api/tracking/orders/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "beef-1")
	assert.Contains(t, rec.Body.String(), "김영희")
}
