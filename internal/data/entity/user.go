package entity

type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

// User is the account row behind an OTP login. Either Email or Phone is
// set, depending on which contact form the customer verified with.
type User struct {
	Base
	Email    *string  `db:"email"`
	Phone    *string  `db:"phone"`
	Name     *string  `db:"name"`
	Role     UserRole `db:"role"`
	Verified bool     `db:"verified"`
	IsActive bool     `db:"is_active"`
}
