package wire

import (
	"electromart/internal/adaptor"
	"electromart/internal/data/repository"
	"electromart/pkg/middleware"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(
	r chi.Router,
	authHandler *adaptor.AuthHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Post("/api/auth/request-otp", authHandler.RequestOTP)
	r.Post("/api/auth/verify-otp", authHandler.VerifyOTP)
	r.Post("/api/admin/login", authHandler.AdminLogin)

	// ==================== PROTECTED ROUTES ====================
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	r.With(auth).Post("/api/auth/logout", authHandler.Logout)
	r.With(auth).Get("/api/me", authHandler.Me)
}
