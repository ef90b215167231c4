package repository

import (
	"errors"

	"electromart/pkg/database"

	"go.uber.org/zap"
)

// ErrStoreNotConfigured is returned by write operations when the app runs
// without a configured database. Reads degrade to empty results instead.
var ErrStoreNotConfigured = errors.New("store not configured")

type Repository struct {
	User    UserRepository
	Session SessionRepository
	Product ProductRepository
	Order   OrderRepository
	Inquiry InquiryRepository
	Profile ProfileRepository
}

// NewRepository wires every repository over one shared handle. db may be
// nil: every repository then short-circuits without a network attempt.
func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:    NewUserRepository(db, log),
		Session: NewSessionRepository(db, log),
		Product: NewProductRepository(db, log),
		Order:   NewOrderRepository(db, log),
		Inquiry: NewInquiryRepository(db, log),
		Profile: NewProfileRepository(db, log),
	}
}
