package entity

import (
	"github.com/google/uuid"
)

type InquiryStatus string

const (
	InquiryPending   InquiryStatus = "pending"
	InquiryContacted InquiryStatus = "contacted"
	InquiryQuoteSent InquiryStatus = "quote_sent"
	InquiryCompleted InquiryStatus = "completed"
	InquiryCancelled InquiryStatus = "cancelled"
)

// Inquiry is a bulk/custom requirement request. Always created with
// status pending; afterwards only the status moves.
type Inquiry struct {
	BaseNoDelete
	UserID       uuid.UUID     `db:"user_id"`
	CustomerType string        `db:"customer_type"`
	Name         string        `db:"name"`
	Phone        string        `db:"phone"`
	Email        *string       `db:"email"`
	Requirement  string        `db:"requirement"`
	Quantity     *string       `db:"quantity"`
	Status       InquiryStatus `db:"status"`
}
