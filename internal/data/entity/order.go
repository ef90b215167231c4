package entity

import (
	"encoding/json"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderConfirmed  OrderStatus = "confirmed"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Order row. Created once at checkout; status and payment status are
// mutated by admin actions; never deleted by this layer. Items and
// PaymentMeta are stored as opaque JSON.
type Order struct {
	BaseNoDelete
	UserID          uuid.UUID       `db:"user_id"`
	OrderNumber     string          `db:"order_number"`
	CustomerName    string          `db:"customer_name"`
	CustomerEmail   *string         `db:"customer_email"`
	CustomerPhone   string          `db:"customer_phone"`
	ShippingAddress string          `db:"shipping_address"`
	Items           json.RawMessage `db:"items"`
	Subtotal        float64         `db:"subtotal"`
	Shipping        float64         `db:"shipping"`
	Total           float64         `db:"total"`
	Status          OrderStatus     `db:"status"`
	PaymentStatus   PaymentStatus   `db:"payment_status"`
	PaymentMeta     json.RawMessage `db:"payment_meta"`
}
