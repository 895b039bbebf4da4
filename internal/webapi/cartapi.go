package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/store"
)

type cartItemPayload struct {
	GiftID   string `json:"gift_id"`
	Quantity int    `json:"quantity"`
}

func (s *WebServer) initCartRouter() {
	s.root.GET("/api/cart", s.getCart)
	s.root.POST("/api/cart/items", s.addCartItem)
	s.root.PUT("/api/cart/items/:id", s.updateCartItem)
	s.root.DELETE("/api/cart/items/:id", s.removeCartItem)
	s.root.DELETE("/api/cart", s.clearCart)
}

func (s *WebServer) clientCart(c echo.Context) (*store.CartStore, error) {
	return s.app.Carts().Cart(clientID(c))
}

func cartView(cart *store.CartStore) echo.Map {
	return echo.Map{
		"items":       cart.Items(),
		"total_items": cart.TotalItemCount(),
		"total_price": cart.TotalPrice(),
	}
}

func (s *WebServer) getCart(c echo.Context) error {
	cart, err := s.clientCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to open cart", err.Error())
	}
	return ok(c, cartView(cart))
}

func (s *WebServer) addCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	gift, found := s.app.Catalog().ByID(payload.GiftID)
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Gift not found", nil)
	}
	if payload.Quantity < 1 {
		payload.Quantity = 1
	}

	cart, err := s.clientCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to open cart", err.Error())
	}
	if err := cart.AddItem(gift, payload.Quantity); err != nil {
		zap.L().Error("cart add persist failed", zap.Error(err))
	}
	if err := s.app.Tracking().RecordAddToCart(gift.ID, gift.Name, gift.Category, payload.Quantity); err != nil {
		zap.L().Error("record add-to-cart failed", zap.Error(err))
	}
	return ok(c, cartView(cart))
}

func (s *WebServer) updateCartItem(c echo.Context) error {
	var payload cartItemPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse cart item", err.Error())
	}
	giftID := c.Param("id")

	cart, err := s.clientCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to open cart", err.Error())
	}
	present := false
	for _, it := range cart.Items() {
		if it.Gift.ID == giftID {
			present = true
			break
		}
	}
	if err := cart.UpdateQuantity(giftID, payload.Quantity); err != nil {
		zap.L().Error("cart update persist failed", zap.Error(err))
	}
	if present && payload.Quantity <= 0 {
		s.recordRemove(giftID)
	}
	return ok(c, cartView(cart))
}

func (s *WebServer) removeCartItem(c echo.Context) error {
	giftID := c.Param("id")
	cart, err := s.clientCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to open cart", err.Error())
	}
	if err := cart.RemoveItem(giftID); err != nil {
		zap.L().Error("cart remove persist failed", zap.Error(err))
	}
	s.recordRemove(giftID)
	return ok(c, cartView(cart))
}

// clearCart empties the cart, recording one remove event per line.
func (s *WebServer) clearCart(c echo.Context) error {
	cart, err := s.clientCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to open cart", err.Error())
	}
	for _, it := range cart.Items() {
		if err := s.app.Tracking().RecordRemoveFromCart(it.Gift.ID, it.Gift.Name, it.Gift.Category); err != nil {
			zap.L().Error("record remove failed", zap.Error(err))
		}
	}
	if err := cart.Clear(); err != nil {
		zap.L().Error("cart clear persist failed", zap.Error(err))
	}
	return ok(c, cartView(cart))
}

func (s *WebServer) recordRemove(giftID string) {
	gift, found := s.app.Catalog().ByID(giftID)
	if !found {
		return
	}
	if err := s.app.Tracking().RecordRemoveFromCart(gift.ID, gift.Name, gift.Category); err != nil {
		zap.L().Error("record remove failed", zap.Error(err))
	}
}
