package request

type InquiryRequest struct {
	CustomerType string  `json:"customer_type" validate:"required,oneof=individual contractor dealer business"`
	Name         string  `json:"name" validate:"required,min=2,max=100"`
	Phone        string  `json:"phone" validate:"required,min=10,max=15"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Requirement  string  `json:"requirement" validate:"required,min=5"`
	Quantity     *string `json:"quantity,omitempty"`
}

type InquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending contacted quote_sent completed cancelled"`
}
