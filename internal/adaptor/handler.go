package adaptor

import (
	"electromart/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Order   *OrderHandler
	Inquiry *InquiryHandler
	Profile *ProfileHandler
	Stream  *StreamHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Product: NewProductHandler(service.Product, log),
		Order:   NewOrderHandler(service.Order, log),
		Inquiry: NewInquiryHandler(service.Inquiry, log),
		Profile: NewProfileHandler(service.Profile, log),
		Stream:  NewStreamHandler(service, log),
	}
}
