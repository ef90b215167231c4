package wire

import (
	"electromart/internal/adaptor"
	"electromart/internal/data/repository"
	"electromart/pkg/middleware"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	admin := middleware.Admin(repo.User, log)

	// ==================== CUSTOMER ROUTES ====================
	r.With(auth).Post("/api/orders", orderHandler.Checkout)
	r.With(auth).Get("/api/orders", orderHandler.GetOrders)
	r.With(auth).Get("/api/orders/{id}", orderHandler.GetOrder)

	// ==================== ADMIN ROUTES ====================
	r.With(auth, admin).Put("/api/orders/{id}/status", orderHandler.UpdateStatus)
	r.With(auth, admin).Put("/api/orders/{id}/payment", orderHandler.UpdatePaymentStatus)
}
