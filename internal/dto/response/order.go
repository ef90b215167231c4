package response

import (
	"encoding/json"
	"time"

	"electromart/internal/data/entity"
)

type OrderResponse struct {
	ID              string               `json:"id"`
	UserID          string               `json:"user_id"`
	OrderNumber     string               `json:"order_number"`
	CustomerName    string               `json:"customer_name"`
	CustomerEmail   *string              `json:"customer_email,omitempty"`
	CustomerPhone   string               `json:"customer_phone"`
	ShippingAddress string               `json:"shipping_address"`
	Items           json.RawMessage      `json:"items"`
	Subtotal        float64              `json:"subtotal"`
	Shipping        float64              `json:"shipping"`
	Total           float64              `json:"total"`
	Status          entity.OrderStatus   `json:"status"`
	PaymentStatus   entity.PaymentStatus `json:"payment_status"`
	PaymentMeta     json.RawMessage      `json:"payment_meta,omitempty"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID.String(),
		UserID:          order.UserID.String(),
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		Items:           order.Items,
		Subtotal:        order.Subtotal,
		Shipping:        order.Shipping,
		Total:           order.Total,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		PaymentMeta:     order.PaymentMeta,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}
