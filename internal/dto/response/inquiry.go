package response

import (
	"time"

	"electromart/internal/data/entity"
)

type InquiryResponse struct {
	ID           string               `json:"id"`
	UserID       string               `json:"user_id"`
	CustomerType string               `json:"customer_type"`
	Name         string               `json:"name"`
	Phone        string               `json:"phone"`
	Email        *string              `json:"email,omitempty"`
	Requirement  string               `json:"requirement"`
	Quantity     *string              `json:"quantity,omitempty"`
	Status       entity.InquiryStatus `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

func InquiryToResponse(inquiry *entity.Inquiry) InquiryResponse {
	return InquiryResponse{
		ID:           inquiry.ID.String(),
		UserID:       inquiry.UserID.String(),
		CustomerType: inquiry.CustomerType,
		Name:         inquiry.Name,
		Phone:        inquiry.Phone,
		Email:        inquiry.Email,
		Requirement:  inquiry.Requirement,
		Quantity:     inquiry.Quantity,
		Status:       inquiry.Status,
		CreatedAt:    inquiry.CreatedAt,
		UpdatedAt:    inquiry.UpdatedAt,
	}
}
