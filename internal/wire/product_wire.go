package wire

import (
	"electromart/internal/adaptor"
	"electromart/internal/data/repository"
	"electromart/pkg/middleware"
	"electromart/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/products", productHandler.GetProducts)
	r.Get("/api/products/{id}", productHandler.GetProduct)

	// ==================== ADMIN ROUTES ====================
	auth := middleware.AuthSession(repo.Session, repo.User, log)
	admin := middleware.Admin(repo.User, log)

	r.With(auth, admin).Post("/api/products", productHandler.CreateProduct)
	r.With(auth, admin).Put("/api/products/{id}", productHandler.UpdateProduct)
	r.With(auth, admin).Delete("/api/products/{id}", productHandler.DeleteProduct)
}
