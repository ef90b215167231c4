package request

type ProfileRequest struct {
	FullName     string  `json:"full_name" validate:"required,min=2,max=100"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	Address      *string `json:"address,omitempty"`
	City         *string `json:"city,omitempty"`
	Pincode      *string `json:"pincode,omitempty" validate:"omitempty,len=6"`
	BusinessName *string `json:"business_name,omitempty"`
	GSTNumber    *string `json:"gst_number,omitempty" validate:"omitempty,len=15"`
}
