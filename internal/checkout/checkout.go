package checkout

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/domain"
	"github.com/lunargift/giftmall/internal/store"
)

// State of one checkout flow instance.
type State int

const (
	StateFilling State = iota
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateFilling:
		return "filling"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Decision is the entry guard result, evaluated before any page logic runs.
type Decision int

const (
	DecisionContinue Decision = iota
	DecisionRedirectToCart
)

// ErrAlreadyCompleted rejects re-submission on a completed flow instance.
var ErrAlreadyCompleted = errors.New("checkout already completed")

// ErrEmptyCart rejects a submit whose cart was emptied after the flow began.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError is a recoverable, user-visible rejection of the submitted
// recipient form. It never corrupts store state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Guard decides whether a checkout page may be entered: an empty cart on a
// not-yet-completed flow redirects back to the cart view.
func Guard(cart *store.CartStore, state State) Decision {
	if state != StateCompleted && cart.IsEmpty() {
		return DecisionRedirectToCart
	}
	return DecisionContinue
}

// Flow is one checkout page instance: Filling until a successful submit,
// then Completed, which is terminal. A new flow is needed to purchase
// again.
type Flow struct {
	mu       sync.Mutex
	state    State
	cart     *store.CartStore
	tracking *store.TrackingStore
}

// Begin opens a checkout flow over the client's cart. The returned decision
// tells the routing layer whether to continue or redirect.
func Begin(cart *store.CartStore, tracking *store.TrackingStore) (*Flow, Decision) {
	f := &Flow{
		state:    StateFilling,
		cart:     cart,
		tracking: tracking,
	}
	return f, Guard(cart, f.state)
}

// State returns the flow's current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit validates the recipient, records the purchase into the tracking
// store, clears the cart and completes the flow. Validation failure leaves
// the flow in Filling with no order created.
func (f *Flow) Submit(recipient domain.RecipientInfo) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateCompleted {
		return nil, ErrAlreadyCompleted
	}
	// the cart may have been emptied since Begin; never record a zero-item order
	if f.cart.IsEmpty() {
		return nil, ErrEmptyCart
	}
	if err := validateRecipient(recipient); err != nil {
		return nil, err
	}

	items := f.cart.Items()
	order, err := f.tracking.RecordPurchase(items, recipient, f.cart.TotalPrice())
	if err != nil {
		// order is in the log already; the persist failure is the caller's
		// to surface
		zap.L().Error("purchase record persist failed", zap.Error(err))
	}
	if cerr := f.cart.Clear(); cerr != nil {
		zap.L().Error("cart clear persist failed", zap.Error(cerr))
	}
	f.state = StateCompleted

	zap.L().Info("checkout completed",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(order.Items)),
		zap.Int64("total_amount", order.TotalAmount),
	)
	return &order, nil
}

func validateRecipient(r domain.RecipientInfo) error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{Field: "name", Message: "받는 분 성함을 입력해주세요"}
	}
	if strings.TrimSpace(r.Phone) == "" {
		return &ValidationError{Field: "phone", Message: "연락처를 입력해주세요"}
	}
	if strings.TrimSpace(r.Address) == "" {
		return &ValidationError{Field: "address", Message: "배송지 주소를 입력해주세요"}
	}
	return nil
}
