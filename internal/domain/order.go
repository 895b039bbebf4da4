package domain

import "time"

// CartItem is one (gift, quantity) line inside a cart or an order.
type CartItem struct {
	Gift     Gift `json:"gift"`
	Quantity int  `json:"quantity"`
}

// RecipientInfo is the delivery target captured at checkout.
// Name, Phone and Address are required; Message is optional.
type RecipientInfo struct {
	Name    string `json:"name" form:"name"`
	Phone   string `json:"phone" form:"phone"`
	Address string `json:"address" form:"address"`
	Message string `json:"message" form:"message"`
}

// Order is an immutable record of one completed checkout. Items is a
// snapshot taken at submit time and does not follow later cart mutations.
type Order struct {
	ID          string        `json:"id"`
	Items       []CartItem    `json:"items"`
	Recipient   RecipientInfo `json:"recipient"`
	TotalAmount int64         `json:"total_amount"`
	CreatedAt   time.Time     `json:"created_at"`
}
