package usecase

import (
	"electromart/internal/data/repository"
	"electromart/pkg/realtime"
	"electromart/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Product ProductService
	Order   OrderService
	Inquiry InquiryService
	Profile ProfileService
}

func NewService(repo *repository.Repository, feed *realtime.Manager, config *utils.Config, log *zap.Logger) *Service {
	sender := NewLogOTPSender(log)

	return &Service{
		Auth:    NewAuthService(repo, sender, config, log),
		Product: NewProductService(repo, feed, log),
		Order:   NewOrderService(repo, feed, log),
		Inquiry: NewInquiryService(repo, feed, log),
		Profile: NewProfileService(repo, log),
	}
}
