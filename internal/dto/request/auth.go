package request

type RequestOTPRequest struct {
	Contact string `json:"contact" validate:"required"`
}

type VerifyOTPRequest struct {
	Contact string `json:"contact" validate:"required"`
	Code    string `json:"code" validate:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}
