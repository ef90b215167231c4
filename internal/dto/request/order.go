package request

import "encoding/json"

type CheckoutRequest struct {
	CustomerName    string          `json:"customer_name" validate:"required,min=2,max=100"`
	CustomerEmail   *string         `json:"customer_email,omitempty" validate:"omitempty,email"`
	CustomerPhone   string          `json:"customer_phone" validate:"required,min=10,max=15"`
	ShippingAddress string          `json:"shipping_address" validate:"required,min=5"`
	Items           json.RawMessage `json:"items" validate:"required"`
	Subtotal        float64         `json:"subtotal" validate:"min=0"`
	Shipping        float64         `json:"shipping" validate:"min=0"`
}

type OrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed processing shipped delivered cancelled"`
}

type PaymentStatusRequest struct {
	PaymentStatus string          `json:"payment_status" validate:"required,oneof=pending completed failed refunded"`
	PaymentMeta   json.RawMessage `json:"payment_meta,omitempty"`
}
