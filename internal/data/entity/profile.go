package entity

import (
	"github.com/google/uuid"
)

// UserProfile holds contact/address/business details, one row per user.
// ProfileCompleted is forced true on every upsert.
type UserProfile struct {
	BaseNoDelete
	UserID           uuid.UUID `db:"user_id"`
	FullName         string    `db:"full_name"`
	Email            *string   `db:"email"`
	Phone            *string   `db:"phone"`
	Address          *string   `db:"address"`
	City             *string   `db:"city"`
	Pincode          *string   `db:"pincode"`
	BusinessName     *string   `db:"business_name"`
	GSTNumber        *string   `db:"gst_number"`
	ProfileCompleted bool      `db:"profile_completed"`
}
