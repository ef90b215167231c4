package response

import (
	"time"

	"electromart/internal/data/entity"
)

type ProfileResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	FullName         string    `json:"full_name"`
	Email            *string   `json:"email,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	Address          *string   `json:"address,omitempty"`
	City             *string   `json:"city,omitempty"`
	Pincode          *string   `json:"pincode,omitempty"`
	BusinessName     *string   `json:"business_name,omitempty"`
	GSTNumber        *string   `json:"gst_number,omitempty"`
	ProfileCompleted bool      `json:"profile_completed"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func ProfileToResponse(profile *entity.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:               profile.ID.String(),
		UserID:           profile.UserID.String(),
		FullName:         profile.FullName,
		Email:            profile.Email,
		Phone:            profile.Phone,
		Address:          profile.Address,
		City:             profile.City,
		Pincode:          profile.Pincode,
		BusinessName:     profile.BusinessName,
		GSTNumber:        profile.GSTNumber,
		ProfileCompleted: profile.ProfileCompleted,
		UpdatedAt:        profile.UpdatedAt,
	}
}
