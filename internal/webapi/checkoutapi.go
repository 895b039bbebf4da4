package webapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/lunargift/giftmall/internal/checkout"
	"github.com/lunargift/giftmall/internal/domain"
)

func (s *WebServer) initCheckoutRouter() {
	s.root.POST("/api/checkout", s.beginCheckout)
	s.root.POST("/api/checkout/submit", s.submitCheckout)
}

// beginCheckout opens a checkout flow over the client's cart. Entering with
// an empty cart yields a redirect decision instead of a flow.
func (s *WebServer) beginCheckout(c echo.Context) error {
	cart, err := s.clientCart(c)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STORE_ERROR", "Failed to open cart", err.Error())
	}

	flow, decision := checkout.Begin(cart, s.app.Tracking())
	if decision == checkout.DecisionRedirectToCart {
		return c.JSON(http.StatusConflict, echo.Map{
			"error": errorBody{
				Code:    "EMPTY_CART",
				Message: "Cart is empty",
			},
			"redirect": "/cart",
		})
	}

	s.mu.Lock()
	s.flows[clientID(c)] = flow
	s.mu.Unlock()

	return ok(c, echo.Map{
		"state":       flow.State().String(),
		"items":       cart.Items(),
		"total_price": cart.TotalPrice(),
	})
}

func (s *WebServer) submitCheckout(c echo.Context) error {
	var recipient domain.RecipientInfo
	if err := c.Bind(&recipient); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse recipient", err.Error())
	}

	s.mu.Lock()
	flow := s.flows[clientID(c)]
	s.mu.Unlock()
	if flow == nil {
		return fail(c, http.StatusConflict, "NO_CHECKOUT", "Checkout has not been started", nil)
	}

	order, err := flow.Submit(recipient)
	if err != nil {
		var verr *checkout.ValidationError
		if errors.As(err, &verr) {
			return fail(c, http.StatusBadRequest, "VALIDATION", verr.Message, echo.Map{"field": verr.Field})
		}
		if errors.Is(err, checkout.ErrAlreadyCompleted) {
			return fail(c, http.StatusConflict, "ALREADY_COMPLETED", "Checkout already completed", nil)
		}
		if errors.Is(err, checkout.ErrEmptyCart) {
			// cart emptied between begin and submit
			return c.JSON(http.StatusConflict, echo.Map{
				"error": errorBody{
					Code:    "EMPTY_CART",
					Message: "Cart is empty",
				},
				"redirect": "/cart",
			})
		}
		return fail(c, http.StatusInternalServerError, "CHECKOUT_ERROR", "Checkout failed", err.Error())
	}

	s.mu.Lock()
	delete(s.flows, clientID(c))
	s.mu.Unlock()

	return ok(c, echo.Map{
		"state": flow.State().String(),
		"order": order,
	})
}
