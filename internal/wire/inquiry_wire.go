package wire

import (
	"electromart/internal/adaptor"
	"electromart/internal/data/repository"
	"electromart/pkg/middleware"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireInquiry(
	r chi.Router,
	inquiryHandler *adaptor.InquiryHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	admin := middleware.Admin(repo.User, log)

	// ==================== CUSTOMER ROUTES ====================
	r.With(auth).Post("/api/inquiries", inquiryHandler.CreateInquiry)
	r.With(auth).Get("/api/inquiries", inquiryHandler.GetInquiries)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Put("/api/inquiries/{id}/status", inquiryHandler.UpdateStatus)
}
