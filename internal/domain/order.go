package domain

import "time"

type Order struct {
	ID          string         `json:"id"`
	OrderNumber string         `json:"order_number"`
	SessionID   string         `json:"-"`
	Items       []CartItem     `json:"items"`
	Customer    CustomerInfo   `json:"customer"`
	Shipping    ShippingInfo   `json:"shipping"`
	Payment     PaymentDisplay `json:"payment"`
	Totals      OrderTotals    `json:"totals"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ShippingInfo struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// PaymentDisplay holds only what the confirmation page shows. Full card
// data is never persisted.
type PaymentDisplay struct {
	CardLast4 string `json:"card_last4"`
	CardName  string `json:"card_name"`
}

type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
